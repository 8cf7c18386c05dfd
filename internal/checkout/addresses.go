package checkout

import (
	"bookstore/internal/domain/model"
	"bookstore/internal/validator"
)

// AddressBookはセッション限りのモック住所帳。
// 住所は注文に載る文字列としてしか送信されない。
type AddressBook struct {
	addresses  []model.Address
	selectedID int64
	nextID     int64
}

// 初期状態はデフォルト住所1件
func NewAddressBook() *AddressBook {
	seed := model.Address{
		ID:           1,
		FullName:     "Buyer",
		PhoneNumber:  "9876543210",
		AddressLine1: "123 Main Street",
		AddressLine2: "Apartment 4B",
		City:         "Mumbai",
		State:        "Maharashtra",
		Pincode:      "400001",
		IsDefault:    true,
	}

	return &AddressBook{
		addresses:  []model.Address{seed},
		selectedID: seed.ID,
		nextID:     seed.ID + 1,
	}
}

func (b *AddressBook) List() []model.Address {
	out := make([]model.Address, len(b.addresses))
	copy(out, b.addresses)
	return out
}

// Addは必須項目を検証してから追加し、追加分を選択状態にする。
func (b *AddressBook) Add(addr model.Address) (model.Address, error) {
	if err := validator.Check(addr); err != nil {
		return model.Address{}, err
	}

	addr.ID = b.nextID
	b.nextID++
	b.addresses = append(b.addresses, addr)
	b.selectedID = addr.ID
	return addr, nil
}

func (b *AddressBook) Select(id int64) bool {
	for _, a := range b.addresses {
		if a.ID == id {
			b.selectedID = id
			return true
		}
	}
	return false
}

// Selectedは選択中の住所。未選択ならfalse。
func (b *AddressBook) Selected() (model.Address, bool) {
	for _, a := range b.addresses {
		if a.ID == b.selectedID {
			return a, true
		}
	}
	return model.Address{}, false
}
