package domain

import (
	"encoding/hex"
	"strings"

	"github.com/DRSN-tech/product-registry/pkg/e"
)

// AddressLength - длина адреса в байтах.
const AddressLength = 20

// Address - непрозрачный идентификатор участника реестра фиксированной длины.
type Address [AddressLength]byte

// ZeroAddress зарезервирован и никогда не является допустимым получателем.
var ZeroAddress Address

// ParseAddress разбирает адрес вида "0x" + 40 hex-символов.
// Префикс "0x" необязателен, регистр не важен.
func ParseAddress(s string) (Address, error) {
	var addr Address

	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != AddressLength*2 {
		return addr, e.ErrInvalidAddress
	}

	if _, err := hex.Decode(addr[:], []byte(s)); err != nil {
		return addr, e.ErrInvalidAddress
	}

	return addr, nil
}

// MustParseAddress как ParseAddress, но паникует при ошибке. Для констант и тестов.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(e.Wrap(s, err))
	}

	return addr
}

// IsZero сообщает, является ли адрес нулевым.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}
