// Package pake adapts the OPAQUE library to the journal's protocol engine.
// It is the only package that talks to github.com/bytemare/opaque; callers
// exchange opaque byte slices and the sentinels from internal/errs.
package pake

import (
	"crypto/sha256"
	"fmt"

	"github.com/bytemare/opaque"

	"github.com/and161185/zk-journal/internal/errs"
)

// credIDLen matches the width of a user id so fake identifiers look real.
const credIDLen = 16

// Server evaluates OPAQUE messages with the server's long-term keys.
// It is safe for concurrent use: every call works on its own library instance.
type Server struct {
	conf *opaque.Configuration
	keys Keys

	// fakeRecord backs logins for identifiers without an envelope.
	fakeRecord []byte
}

// NewServer validates keys and prepares the fake record for the dummy flow.
func NewServer(keys Keys) (*Server, error) {
	s := &Server{conf: opaque.DefaultConfiguration(), keys: keys}

	srv, err := s.conf.Server()
	if err != nil {
		return nil, fmt.Errorf("opaque server: %w", err)
	}
	if _, err := srv.Deserialize.DecodeAkePublicKey(keys.PublicKey); err != nil {
		return nil, fmt.Errorf("server public key: %w", err)
	}
	if n := s.conf.Hash.Size(); len(keys.OPRFSeed) != n {
		return nil, fmt.Errorf("oprf seed: got %d bytes, want %d", len(keys.OPRFSeed), n)
	}

	fake, err := s.buildFakeRecord()
	if err != nil {
		return nil, fmt.Errorf("fake record: %w", err)
	}
	s.fakeRecord = fake

	if err := s.selfTest(); err != nil {
		return nil, fmt.Errorf("key self-test: %w", err)
	}
	return s, nil
}

// selfTest runs one full login against a throwaway registration. A private
// key that does not match the public key fails the client's server MAC check.
func (s *Server) selfTest() error {
	const identifier = "self-test"
	password := opaque.RandomBytes(32)
	credID := FakeCredentialID(s.keys.OPRFSeed, identifier)

	c := NewClient(string(s.keys.ServerID))
	reg, req, err := c.StartRegistration(password)
	if err != nil {
		return err
	}
	resp, err := s.RegistrationResponse(credID, req)
	if err != nil {
		return err
	}
	record, _, err := reg.Finish(identifier, resp)
	if err != nil {
		return err
	}

	login, ke1, err := c.StartLogin(password)
	if err != nil {
		return err
	}
	ke2, state, err := s.LoginResponse(identifier, credID, record, ke1)
	if err != nil {
		return err
	}
	ke3, _, err := login.Finish(identifier, ke2)
	if err != nil {
		return fmt.Errorf("client finish: %w", err)
	}
	if err := s.LoginFinish(state, ke3); err != nil {
		return fmt.Errorf("server finish: %w", err)
	}
	return nil
}

// buildFakeRecord registers a random password against our own keys so that
// dummy logins produce well-formed responses.
func (s *Server) buildFakeRecord() ([]byte, error) {
	c := NewClient(string(s.keys.ServerID))
	reg, req, err := c.StartRegistration(opaque.RandomBytes(32))
	if err != nil {
		return nil, err
	}
	resp, err := s.RegistrationResponse(FakeCredentialID(s.keys.OPRFSeed, "fake"), req)
	if err != nil {
		return nil, err
	}
	record, _, err := reg.Finish("fake", resp)
	return record, err
}

// FakeCredentialID derives a stable credential id for an identifier that has
// no envelope. The same identifier always gets the same id.
func FakeCredentialID(seed []byte, identifier string) []byte {
	h := sha256.New()
	h.Write([]byte("zk-journal fake credential"))
	h.Write(seed)
	h.Write([]byte(identifier))
	return h.Sum(nil)[:credIDLen]
}

// RegistrationResponse evaluates a client's registration request.
// credentialID must stay the same for the user's whole existence.
func (s *Server) RegistrationResponse(credentialID, request []byte) ([]byte, error) {
	srv, err := s.conf.Server()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInternalCrypto, err)
	}
	req, err := srv.Deserialize.RegistrationRequest(request)
	if err != nil {
		return nil, fmt.Errorf("%w: registration request: %v", errs.ErrMalformedRequest, err)
	}
	pks, err := srv.Deserialize.DecodeAkePublicKey(s.keys.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInternalCrypto, err)
	}
	resp := srv.RegistrationResponse(req, pks, credentialID, s.keys.OPRFSeed)
	return resp.Serialize(), nil
}

// ValidateRecord checks that record decodes as a registration record.
func (s *Server) ValidateRecord(record []byte) error {
	if len(record) == 0 {
		return fmt.Errorf("%w: empty record", errs.ErrRecordMalformed)
	}
	srv, err := s.conf.Server()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInternalCrypto, err)
	}
	if _, err := srv.Deserialize.RegistrationRecord(record); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrRecordMalformed, err)
	}
	return nil
}

// LoginResponse answers KE1 and returns KE2 plus the serialized AKE state
// that LoginFinish needs. A nil record switches to the fake record; the
// response is indistinguishable to the client.
func (s *Server) LoginResponse(identifier string, credentialID, record, ke1 []byte) (ke2, state []byte, err error) {
	srv, err := s.conf.Server()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrInternalCrypto, err)
	}
	msg, err := srv.Deserialize.KE1(ke1)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: credential request: %v", errs.ErrMalformedRequest, err)
	}

	if record == nil {
		record = s.fakeRecord
		credentialID = FakeCredentialID(s.keys.OPRFSeed, identifier)
	}
	rec, err := srv.Deserialize.RegistrationRecord(record)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrRecordMalformed, err)
	}
	client := &opaque.ClientRecord{
		CredentialIdentifier: credentialID,
		ClientIdentity:       []byte(identifier),
		RegistrationRecord:   rec,
	}

	resp, err := srv.LoginInit(msg, s.keys.ServerID, s.keys.PrivateKey, s.keys.PublicKey, s.keys.OPRFSeed, client)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: login init: %v", errs.ErrInternalCrypto, err)
	}
	return resp.Serialize(), srv.SerializeState(), nil
}

// LoginFinish restores the AKE state and verifies the client's KE3 MAC.
// The library compares MACs in constant time.
func (s *Server) LoginFinish(state, ke3 []byte) error {
	srv, err := s.conf.Server()
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInternalCrypto, err)
	}
	if err := srv.SetAKEState(state); err != nil {
		return fmt.Errorf("%w: restore state: %v", errs.ErrInternalCrypto, err)
	}
	msg, err := srv.Deserialize.KE3(ke3)
	if err != nil {
		return fmt.Errorf("%w: credential finalization: %v", errs.ErrMalformedRequest, err)
	}
	if err := srv.LoginFinish(msg); err != nil {
		return errs.ErrAuthenticationFailed
	}
	return nil
}
