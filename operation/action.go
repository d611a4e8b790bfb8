package operation

import (
	"github.com/zhigui-projects/go-pemsign/api"
	"github.com/zhigui-projects/go-pemsign/common/crypto"
)

// ActionForRole maps a key role to the operation it implies. Private keys
// sign; public keys and certificates verify. Any other role is an error.
func ActionForRole(role crypto.KeyRole) (Action, error) {
	switch role {
	case crypto.RolePrivate:
		return ActionSign, nil
	case crypto.RolePublic, crypto.RoleCertificate:
		return ActionVerify, nil
	default:
		return ActionUnspecified, api.NewError(api.KindUnhandledAction, "Unhandled key role: %s", role)
	}
}

func (a Action) valid() bool {
	return a == ActionUnspecified || a == ActionSign || a == ActionVerify
}
