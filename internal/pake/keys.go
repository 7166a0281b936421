package pake

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/bytemare/opaque"
)

// DefaultServerID is the server identity bound into every AKE transcript.
const DefaultServerID = "zk-journal"

// Keys is the server's long-term OPAQUE material. It must stay the same for
// a given user between registration and every login.
type Keys struct {
	ServerID   []byte
	PrivateKey []byte
	PublicKey  []byte
	OPRFSeed   []byte
}

// GenerateKeys creates a fresh AKE key pair and OPRF seed.
func GenerateKeys(serverID string) Keys {
	conf := opaque.DefaultConfiguration()
	sk, pk := conf.KeyGen()
	return Keys{
		ServerID:   []byte(serverID),
		PrivateKey: sk,
		PublicKey:  pk,
		OPRFSeed:   conf.GenerateOPRFSeed(),
	}
}

// ParseKeys decodes base64 (standard encoding) key material as stored in config.
func ParseKeys(serverID, privateKey, publicKey, oprfSeed string) (Keys, error) {
	if serverID == "" {
		return Keys{}, errors.New("server id is empty")
	}
	sk, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil || len(sk) == 0 {
		return Keys{}, fmt.Errorf("private key: invalid base64")
	}
	pk, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil || len(pk) == 0 {
		return Keys{}, fmt.Errorf("public key: invalid base64")
	}
	seed, err := base64.StdEncoding.DecodeString(oprfSeed)
	if err != nil || len(seed) == 0 {
		return Keys{}, fmt.Errorf("oprf seed: invalid base64")
	}
	return Keys{ServerID: []byte(serverID), PrivateKey: sk, PublicKey: pk, OPRFSeed: seed}, nil
}

// Encoded returns the base64 form accepted by ParseKeys.
func (k Keys) Encoded() (privateKey, publicKey, oprfSeed string) {
	return base64.StdEncoding.EncodeToString(k.PrivateKey),
		base64.StdEncoding.EncodeToString(k.PublicKey),
		base64.StdEncoding.EncodeToString(k.OPRFSeed)
}
