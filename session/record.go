package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/infinitysurge/pentaauth/permission"
)

// record is the persisted layout. Fields added later must tolerate absence.
type record struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// EncodeRecord serializes p into the persisted layout.
func EncodeRecord(p Principal) ([]byte, error) {
	if p.Email == "" {
		return nil, errors.New("principal email empty")
	}
	if !p.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", permission.ErrUnknownRole, string(p.Role))
	}
	return json.Marshal(record{Email: p.Email, Name: p.Name, Role: string(p.Role)})
}

// DecodeRecord parses a persisted record. Unknown fields are ignored; a
// missing email or a role outside the closed set is an error.
func DecodeRecord(data []byte) (Principal, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Principal{}, err
	}
	if rec.Email == "" {
		return Principal{}, errors.New("record email empty")
	}
	role, err := permission.ParseRole(rec.Role)
	if err != nil {
		return Principal{}, err
	}
	return Principal{Email: rec.Email, Name: rec.Name, Role: role}, nil
}
