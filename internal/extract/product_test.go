package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyProductSpecificBeforeGeneric(t *testing.T) {
	ref, desc := IdentifyProduct("Alfarda tratada 12x300, precio unitario 42378")
	assert.Equal(t, "ALF-12X300", ref)
	assert.Equal(t, "Alfarda tratada 12x300", desc)

	ref, desc = IdentifyProduct("necesito una alfarda para el techo")
	assert.Equal(t, "ALF-STD", ref)
	assert.Equal(t, "Alfarda tratada", desc)
}

func TestIdentifyProductFamilies(t *testing.T) {
	cases := []struct {
		text string
		ref  string
	}{
		{"poste inmunizado de 2.2m", "POS-INM"},
		{"un poste para la cerca", "POS-STD"},
		{"estacón para cultivo", "EST-STD"},
		{"ESTACON PARA CULTIVO", "EST-STD"},
		{"tablilla para pared", "TBL-STD"},
		{"tabla burra de 3 metros", "TAB-STD"},
		{"mesa de comedor", "MES-STD"},
	}
	for _, tc := range cases {
		ref, _ := IdentifyProduct(tc.text)
		assert.Equal(t, tc.ref, ref, "text: %s", tc.text)
	}
}

func TestIdentifyProductFallback(t *testing.T) {
	ref, desc := IdentifyProduct("hola, quisiera informacion general")
	assert.Equal(t, "GEN-001", ref)
	assert.Equal(t, "Producto de madera inmunizada", desc)
}
