package identity

import (
	"strings"

	"github.com/julianstephens/botroom/internal/config"
	"github.com/julianstephens/botroom/internal/constants"
)

// Identity is the signed-in operator. It is resolved once at startup and
// never re-read while the program runs.
type Identity struct {
	Email string
}

// Resolve picks the operator email. An explicit flag value wins over the
// config, which already carries any environment override.
func Resolve(flagEmail string, cfg config.Config) Identity {
	if e := strings.TrimSpace(flagEmail); e != "" {
		return Identity{Email: e}
	}
	return Identity{Email: strings.TrimSpace(cfg.User.Email)}
}

// SignedIn reports whether an email is known.
func (i Identity) SignedIn() bool {
	return i.Email != ""
}

// DisplayName is the part of the email before "@", or "User" when no
// identity is available.
func (i Identity) DisplayName() string {
	if i.Email == "" {
		return constants.DefaultDisplayName
	}
	name, _, _ := strings.Cut(i.Email, "@")
	if name == "" {
		return constants.DefaultDisplayName
	}
	return name
}
