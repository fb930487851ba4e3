package report

// Letterhead is the company data printed on the quotation header. It only
// affects rendering; the quotation record itself never changes once built.
type Letterhead struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Email   string `json:"email"`
}

// DefaultLetterhead returns the placeholder company data used until the
// session configures its own.
func DefaultLetterhead() Letterhead {
	return Letterhead{
		Name:    "Tu Empresa de Productos de Madera",
		TaxID:   "900.XXX.XXX-X",
		Address: "Calle XX # XX - XX",
		Phone:   "XXX-XXXX",
		City:    "Medellín",
		Email:   "ventas@tuempresa.com",
	}
}

// merged fills empty letterhead fields from the defaults so a partial
// override still renders a complete header.
func (l Letterhead) merged() Letterhead {
	def := DefaultLetterhead()
	if l.Name == "" {
		l.Name = def.Name
	}
	if l.TaxID == "" {
		l.TaxID = def.TaxID
	}
	if l.Address == "" {
		l.Address = def.Address
	}
	if l.Phone == "" {
		l.Phone = def.Phone
	}
	if l.City == "" {
		l.City = def.City
	}
	if l.Email == "" {
		l.Email = def.Email
	}
	return l
}
