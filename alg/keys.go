package alg

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/ssh"
)

var (
	// ErrKeyMismatch is an exported constant or variable used by the token engine.
	ErrKeyMismatch = errors.New("key material does not match algorithm")
	// ErrKeyMaterialInvalid is an exported constant or variable used by the token engine.
	ErrKeyMaterialInvalid = errors.New("invalid key material")
)

// KeyKind identifies which capability a Key carries.
type KeyKind int

const (
	// KeyAbsent is an exported constant or variable used by the token engine.
	KeyAbsent KeyKind = iota
	// KeySecret is an exported constant or variable used by the token engine.
	KeySecret
	// KeyPrivate is an exported constant or variable used by the token engine.
	KeyPrivate
	// KeyPublic is an exported constant or variable used by the token engine.
	KeyPublic
)

func (k KeyKind) String() string {
	switch k {
	case KeySecret:
		return "secret"
	case KeyPrivate:
		return "private"
	case KeyPublic:
		return "public"
	default:
		return "absent"
	}
}

// Key defines a public type used by goForge APIs.
//
// Key instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Key struct {
	kind KeyKind
	raw  []byte

	secret []byte

	rsaPrivate *rsa.PrivateKey
	rsaPublic  *rsa.PublicKey
	ecPrivate  *ecdsa.PrivateKey
	ecPublic   *ecdsa.PublicKey
}

// NoKey returns the absent key used with the none algorithm.
func NoKey() Key { return Key{} }

// SecretKey wraps raw bytes as an HMAC secret. Empty secrets are allowed since
// weak deployments use them and the cracker has to be able to test them.
func SecretKey(secret []byte) Key {
	b := cloneBytes(secret)
	return Key{kind: KeySecret, raw: b, secret: b}
}

// ParsePrivateKey parses PEM private key material. RSA keys serve the RS and PS
// families, EC keys the ES family.
func ParsePrivateKey(data []byte) (Key, error) {
	if rsaKey, err := jwt.ParseRSAPrivateKeyFromPEM(data); err == nil {
		return Key{kind: KeyPrivate, raw: cloneBytes(data), rsaPrivate: rsaKey, rsaPublic: &rsaKey.PublicKey}, nil
	}
	if ecKey, err := jwt.ParseECPrivateKeyFromPEM(data); err == nil {
		return Key{kind: KeyPrivate, raw: cloneBytes(data), ecPrivate: ecKey, ecPublic: &ecKey.PublicKey}, nil
	}
	return Key{}, fmt.Errorf("%w: not a PEM encoded RSA or EC private key", ErrKeyMaterialInvalid)
}

// ParsePublicKey parses public key material: PEM (PKIX, PKCS1, or a
// certificate) and OpenSSH authorized_keys lines.
func ParsePublicKey(data []byte) (Key, error) {
	if rsaKey, err := jwt.ParseRSAPublicKeyFromPEM(data); err == nil {
		return Key{kind: KeyPublic, raw: cloneBytes(data), rsaPublic: rsaKey}, nil
	}
	if ecKey, err := jwt.ParseECPublicKeyFromPEM(data); err == nil {
		return Key{kind: KeyPublic, raw: cloneBytes(data), ecPublic: ecKey}, nil
	}
	if sshKey, _, _, _, err := ssh.ParseAuthorizedKey(data); err == nil {
		if cryptoKey, ok := sshKey.(ssh.CryptoPublicKey); ok {
			switch pub := cryptoKey.CryptoPublicKey().(type) {
			case *rsa.PublicKey:
				return Key{kind: KeyPublic, raw: cloneBytes(data), rsaPublic: pub}, nil
			case *ecdsa.PublicKey:
				return Key{kind: KeyPublic, raw: cloneBytes(data), ecPublic: pub}, nil
			}
		}
	}
	return Key{}, fmt.Errorf("%w: not a PEM or authorized_keys public key", ErrKeyMaterialInvalid)
}

// Kind reports which capability the key carries.
func (k Key) Kind() KeyKind { return k.kind }

// Raw returns a copy of the source bytes the key was built from. Confusion
// attacks feed a public key's source bytes back in as an HMAC secret.
func (k Key) Raw() []byte { return cloneBytes(k.raw) }

func (k Key) hmacSecret() ([]byte, bool) {
	if k.kind != KeySecret {
		return nil, false
	}
	return k.secret, true
}

func (k Key) rsaSigner() (*rsa.PrivateKey, bool) {
	if k.kind != KeyPrivate || k.rsaPrivate == nil {
		return nil, false
	}
	return k.rsaPrivate, true
}

// rsaVerifier also accepts a private key, verification runs against its public half.
func (k Key) rsaVerifier() (*rsa.PublicKey, bool) {
	if (k.kind == KeyPublic || k.kind == KeyPrivate) && k.rsaPublic != nil {
		return k.rsaPublic, true
	}
	return nil, false
}

func (k Key) ecdsaSigner() (*ecdsa.PrivateKey, bool) {
	if k.kind != KeyPrivate || k.ecPrivate == nil {
		return nil, false
	}
	return k.ecPrivate, true
}

func (k Key) ecdsaVerifier() (*ecdsa.PublicKey, bool) {
	if (k.kind == KeyPublic || k.kind == KeyPrivate) && k.ecPublic != nil {
		return k.ecPublic, true
	}
	return nil, false
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
