package convert

import (
	"errors"
	"strings"
	"testing"
	"time"

	"google.golang.org/protobuf/proto"

	pb "github.com/and161185/zk-journal/gen/go/zkjournal/auth/v1"
	"github.com/and161185/zk-journal/internal/errs"
	"github.com/and161185/zk-journal/internal/model"
	"github.com/and161185/zk-journal/internal/service"
)

func TestRequired(t *testing.T) {
	t.Parallel()

	if b, err := Required("x", []byte{0}); err != nil || len(b) != 1 {
		t.Fatalf("one zero byte is a valid message: %v %v", b, err)
	}
	for _, in := range [][]byte{nil, {}} {
		_, err := Required("registration_record", in)
		if !errors.Is(err, errs.ErrMalformedRequest) {
			t.Fatalf("err=%v, want ErrMalformedRequest", err)
		}
		if !strings.Contains(err.Error(), "registration_record") {
			t.Fatalf("error must name the field: %v", err)
		}
	}
}

func TestFromProto(t *testing.T) {
	t.Parallel()

	id, req, err := FromProtoRegisterStart(&pb.RegisterStartRequest{Identifier: "alice", RegistrationRequest: []byte{1, 2}})
	if err != nil || id != "alice" || len(req) != 2 {
		t.Fatalf("register start: %q %v %v", id, req, err)
	}
	if _, _, err := FromProtoRegisterStart(nil); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("nil body: %v", err)
	}
	if _, _, err := FromProtoLoginStart(&pb.LoginStartRequest{Identifier: "alice"}); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("missing ke1: %v", err)
	}
	if _, _, err := FromProtoRegisterFinish("s", nil); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("missing record: %v", err)
	}
	sid, ke3, err := FromProtoLoginFinish(&pb.LoginFinishRequest{SessionId: "s", CredentialFinalization: []byte{1}})
	if err != nil || sid != "s" || len(ke3) != 1 {
		t.Fatalf("login finish: %v", err)
	}
}

func TestToProtoTokens_RoundTripsExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Date(2030, 1, 2, 3, 4, 5, 6, time.FixedZone("X", 3600))
	in := model.Tokens{AccessToken: "a", RefreshToken: "r", ExpiresAt: exp}

	// through the wire encoding, as a client would see it
	b, err := proto.Marshal(ToProtoTokens(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var msg pb.LoginFinishResponse
	if err := proto.Unmarshal(b, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := FromProtoTokens(&msg)
	if got.AccessToken != "a" || got.RefreshToken != "r" {
		t.Fatalf("tokens: %+v", got)
	}
	if got.ExpiresAt.Location() != time.UTC || !got.ExpiresAt.Equal(exp) {
		t.Fatalf("expiry must be UTC and equal: %v", got.ExpiresAt)
	}

	if ToProtoRefresh(model.Tokens{AccessToken: "a"}).GetExpiresAt() != nil {
		t.Fatalf("zero expiry must be omitted")
	}
	if !FromProtoTokens(nil).ExpiresAt.IsZero() {
		t.Fatalf("nil response must give zero tokens")
	}
}

func TestFromProtoStart(t *testing.T) {
	t.Parallel()

	r := ToProtoLoginStart(service.StartResult{Response: []byte{1, 2}, SessionID: "s"})
	res, err := FromProtoStart("credential_response", r.GetCredentialResponse(), r.GetSessionId())
	if err != nil || res.SessionID != "s" || len(res.Response) != 2 {
		t.Fatalf("FromProtoStart: %+v %v", res, err)
	}
	if _, err := FromProtoStart("registration_response", []byte{1}, ""); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("missing session id: %v", err)
	}
	if _, err := FromProtoStart("registration_response", nil, "s"); !errors.Is(err, errs.ErrMalformedRequest) {
		t.Fatalf("missing blob: %v", err)
	}
}
