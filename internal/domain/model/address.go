package model

import "fmt"

// 配送先住所。チェックアウトセッション中だけメモリに持つ。
type Address struct {
	ID           int64  `json:"id"`
	FullName     string `json:"fullName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required"`
	IsDefault    bool   `json:"isDefault"`
}

// FormatShippingは注文に載せる1行の住所文字列
func (a Address) FormatShipping() string {
	s := fmt.Sprintf("%s, %s, %s", a.FullName, a.PhoneNumber, a.AddressLine1)
	if a.AddressLine2 != "" {
		s += ", " + a.AddressLine2
	}
	return fmt.Sprintf("%s, %s, %s - %s", s, a.City, a.State, a.Pincode)
}
