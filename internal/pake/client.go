package pake

import (
	"errors"
	"fmt"

	"github.com/bytemare/opaque"

	"github.com/and161185/zk-journal/internal/errs"
)

// Client drives the client side of both OPAQUE flows.
type Client struct {
	conf     *opaque.Configuration
	serverID []byte
}

// NewClient returns a client that expects the given server identity.
func NewClient(serverID string) *Client {
	return &Client{conf: opaque.DefaultConfiguration(), serverID: []byte(serverID)}
}

// Registration is an in-flight registration. It is single-use.
type Registration struct {
	c    *Client
	impl *opaque.Client
	done bool
}

// Login is an in-flight login. It is single-use.
type Login struct {
	c    *Client
	impl *opaque.Client
	done bool
}

var errFlowUsed = errors.New("flow already finished")

// StartRegistration blinds password and returns the registration request.
func (c *Client) StartRegistration(password []byte) (*Registration, []byte, error) {
	if len(password) == 0 {
		return nil, nil, fmt.Errorf("%w: empty password", errs.ErrMalformedRequest)
	}
	impl, err := c.conf.Client()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrInternalCrypto, err)
	}
	req := impl.RegistrationInit(password)
	return &Registration{c: c, impl: impl}, req.Serialize(), nil
}

// Finish consumes the server response and returns the record to upload and
// the export key. The export key never leaves the client.
func (r *Registration) Finish(identifier string, response []byte) (record, exportKey []byte, err error) {
	if r.done {
		return nil, nil, errFlowUsed
	}
	r.done = true
	resp, err := r.impl.Deserialize.RegistrationResponse(response)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: registration response: %v", errs.ErrMalformedRequest, err)
	}
	rec, exportKey := r.impl.RegistrationFinalize(resp, []byte(identifier), r.c.serverID)
	return rec.Serialize(), exportKey, nil
}

// StartLogin returns KE1 for password.
func (c *Client) StartLogin(password []byte) (*Login, []byte, error) {
	if len(password) == 0 {
		return nil, nil, fmt.Errorf("%w: empty password", errs.ErrMalformedRequest)
	}
	impl, err := c.conf.Client()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrInternalCrypto, err)
	}
	ke1 := impl.LoginInit(password)
	return &Login{c: c, impl: impl}, ke1.Serialize(), nil
}

// Finish consumes KE2 and returns KE3 and the export key. A wrong password
// or a fake record fails here with ErrAuthenticationFailed.
func (l *Login) Finish(identifier string, ke2 []byte) (ke3, exportKey []byte, err error) {
	if l.done {
		return nil, nil, errFlowUsed
	}
	l.done = true
	msg, err := l.impl.Deserialize.KE2(ke2)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: credential response: %v", errs.ErrMalformedRequest, err)
	}
	out, exportKey, err := l.impl.LoginFinish([]byte(identifier), l.c.serverID, msg)
	if err != nil {
		return nil, nil, errs.ErrAuthenticationFailed
	}
	return out.Serialize(), exportKey, nil
}
