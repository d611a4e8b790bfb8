package operation

import (
	"github.com/zhigui-projects/go-pemsign/api"
	"github.com/zhigui-projects/go-pemsign/common/crypto"
)

// dispatch feeds the whole payload to a signer or verifier in one call.
// haveSignature reports whether a signature was materialized.
func dispatch(action Action, alg crypto.Algorithm, key *crypto.Key, payload []byte, signature string, haveSignature bool) (*Result, error) {
	if action == ActionUnspecified {
		inferred, err := ActionForRole(key.Role)
		if err != nil {
			return nil, err
		}
		logger.Debug("action inferred from key", "role", key.Role, "action", inferred)
		action = inferred
	}

	switch action {
	case ActionSign:
		if key.Role != crypto.RolePrivate {
			return nil, api.NewError(api.KindUnhandledAction, "Unhandled action: SIGN requires a private key, got %s", key.Role)
		}
		signer, err := crypto.NewSigner(alg, key)
		if err != nil {
			return nil, api.WrapError(api.KindPrecondition, err, "Cannot sign with %s", alg)
		}
		sig, err := signer.Sign(payload)
		if err != nil {
			return nil, api.WrapError(api.KindPrecondition, err, "Cannot sign with %s", alg)
		}
		return &Result{Action: ActionSign, Signature: crypto.EncodeSignature(sig)}, nil

	case ActionVerify:
		if !haveSignature {
			return nil, api.NewError(api.KindMissingSignature, "Signature file not specified")
		}
		verifier, err := crypto.NewVerifier(alg, key)
		if err != nil {
			return nil, api.WrapError(api.KindPrecondition, err, "Cannot verify with %s", alg)
		}
		raw, err := crypto.DecodeSignature(signature)
		if err != nil {
			logger.Debug("malformed signature treated as mismatch", "error", err)
			return &Result{Action: ActionVerify, Verified: false}, nil
		}
		ok, err := verifier.Verify(raw, payload)
		if err != nil {
			return nil, api.WrapError(api.KindPrecondition, err, "Cannot verify with %s", alg)
		}
		return &Result{Action: ActionVerify, Verified: ok}, nil

	default:
		return nil, api.NewError(api.KindUnhandledAction, "Unhandled action: %s", action)
	}
}
