package models

// TenantOwned is implemented by every row that belongs to a company.
type TenantOwned interface {
	GetCompanyID() uint
	SetCompanyID(id uint)
	IsActive() bool
	SetActive(active bool)
}

// ForeignKey describes one reference from a tenant-owned row to another
// tenant-owned row. Target is a zero value of the referenced model, used only
// to resolve its table.
type ForeignKey struct {
	Field  string
	Target TenantOwned
	ID     uint
}

// Referencing is implemented by rows whose foreign keys must stay inside the
// owning company.
type Referencing interface {
	ForeignKeys() []ForeignKey
}

// Owned carries the company reference and soft-delete flag shared by all
// tenant rows.
type Owned struct {
	CompanyID uint `gorm:"index;not null" json:"company_id"`
	Active    bool `gorm:"not null;default:true" json:"active"`
}

func (o *Owned) GetCompanyID() uint    { return o.CompanyID }
func (o *Owned) SetCompanyID(id uint)  { o.CompanyID = id }
func (o *Owned) IsActive() bool        { return o.Active }
func (o *Owned) SetActive(active bool) { o.Active = active }
