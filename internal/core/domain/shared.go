package domain

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("product id must be an integer")

// ID is the store-assigned product identifier. Stored ids are positive
// and never reused.
type ID int64

// ParseID accepts any base-10 integer. Zero and negative ids parse; they
// simply match no product.
func ParseID(raw string) (ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidID
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return ID(n), nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
