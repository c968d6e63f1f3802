package vault

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const recordFormatVersionCurrent = 1

// Record defines a public type used by goForge APIs.
//
// Record instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Record struct {
	// Fingerprint is the base64url SHA-256 of the token's signing input.
	Fingerprint string
	// Secret is the recovered HMAC secret.
	Secret []byte
	// Algorithm is the canonical JOSE name the secret verified under.
	Algorithm string
	// Attempts is the dictionary position at which the secret matched.
	Attempts uint64
	// Source labels the wordlist that produced the match.
	Source string
	// RecoveredAt is the unix-seconds recovery time.
	RecoveredAt int64
}

func Encode(r *Record) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(recordFormatVersionCurrent)

	if len(r.Fingerprint) > 255 {
		return nil, errors.New("fingerprint too long")
	}
	buf.WriteByte(byte(len(r.Fingerprint)))
	buf.WriteString(r.Fingerprint)

	if len(r.Secret) > 65535 {
		return nil, errors.New("secret too long")
	}
	if err := binary.Write(&buf, binary.BigEndian, uint16(len(r.Secret))); err != nil {
		return nil, err
	}
	buf.Write(r.Secret)

	if len(r.Algorithm) > 255 {
		return nil, errors.New("algorithm too long")
	}
	buf.WriteByte(byte(len(r.Algorithm)))
	buf.WriteString(r.Algorithm)

	if err := binary.Write(&buf, binary.BigEndian, r.Attempts); err != nil {
		return nil, err
	}

	if len(r.Source) > 255 {
		return nil, errors.New("source too long")
	}
	buf.WriteByte(byte(len(r.Source)))
	buf.WriteString(r.Source)

	if err := binary.Write(&buf, binary.BigEndian, r.RecoveredAt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func Decode(data []byte) (*Record, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != recordFormatVersionCurrent {
		return nil, errors.New("invalid record version")
	}

	r := &Record{}

	fpLen, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	fingerprint := make([]byte, fpLen)
	if _, err := io.ReadFull(reader, fingerprint); err != nil {
		return nil, err
	}
	r.Fingerprint = string(fingerprint)

	var secretLen uint16
	if err := binary.Read(reader, binary.BigEndian, &secretLen); err != nil {
		return nil, err
	}
	secret := make([]byte, secretLen)
	if _, err := io.ReadFull(reader, secret); err != nil {
		return nil, err
	}
	r.Secret = secret

	algLen, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	algName := make([]byte, algLen)
	if _, err := io.ReadFull(reader, algName); err != nil {
		return nil, err
	}
	r.Algorithm = string(algName)

	if err := binary.Read(reader, binary.BigEndian, &r.Attempts); err != nil {
		return nil, err
	}

	srcLen, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	source := make([]byte, srcLen)
	if _, err := io.ReadFull(reader, source); err != nil {
		return nil, err
	}
	r.Source = string(source)

	if err := binary.Read(reader, binary.BigEndian, &r.RecoveredAt); err != nil {
		return nil, err
	}

	return r, nil
}
