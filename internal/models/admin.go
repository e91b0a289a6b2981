package models

// AdminUser is a row of the admin directory. The directory is the durable
// source of admin truth; the credential store's user metadata is only a
// cache of it and may be stale or absent.
type AdminUser struct {
	ID         string `gorm:"column:id;type:uuid;primaryKey" json:"id"` // credential-store identity
	Email      string `gorm:"column:email;type:text" json:"email"`
	FullName   string `gorm:"column:full_name;type:text" json:"full_name"`
	Department string `gorm:"column:department;type:text" json:"department"`
	IsAdmin    bool   `gorm:"column:is_admin" json:"is_admin"`
}

func (AdminUser) TableName() string { return "admin_users" }

// AdminStatus is the resolved view of an account's admin standing, as
// returned by the explicit verify/sync operation.
type AdminStatus struct {
	IsAdmin    bool   `json:"is_admin"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}
