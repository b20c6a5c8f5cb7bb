package models

// Material is a type of aggregate produced and traded (dust, 20mm metal, GSB...)
type Material struct {
	Model
	Name string `json:"name" gorm:"column:name;uniqueIndex:uq_materials_name;not null" binding:"required"`
	Unit string `json:"unit" gorm:"column:unit;size:32;default:'Ton'"`
}

// TableName overrides the table name
func (Material) TableName() string {
	return "materials"
}

// CrusherSite is a physical extraction site
type CrusherSite struct {
	Model
	Name     string `json:"name" gorm:"column:name;not null" binding:"required"`
	Owner    string `json:"owner" gorm:"column:owner"`
	Location string `json:"location" gorm:"column:location"`

	Materials []CrusherSiteMaterial `json:"materials,omitempty" gorm:"foreignKey:CrusherSiteID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (CrusherSite) TableName() string {
	return "crusher_sites"
}

// CrusherSiteMaterial links a site to a material it produces.
// The (site, material) pair is unique and the row cascades away with
// either parent.
type CrusherSiteMaterial struct {
	Model
	CrusherSiteID uint `json:"crusherSiteId" gorm:"column:crusher_site_id;not null;uniqueIndex:uq_site_material" binding:"required"`
	MaterialID    uint `json:"materialId" gorm:"column:material_id;not null;uniqueIndex:uq_site_material" binding:"required"`

	CrusherSite *CrusherSite `json:"crusherSite,omitempty" gorm:"foreignKey:CrusherSiteID;constraint:OnDelete:CASCADE"`
	Material    *Material    `json:"material,omitempty" gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (CrusherSiteMaterial) TableName() string {
	return "crusher_site_materials"
}
