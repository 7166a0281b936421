// Command zk is a CLI client for the zk-journal auth service. It runs the
// OPAQUE flows locally and derives the master key that seals journal entries.
package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/and161185/zk-journal/internal/pake"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// ---- grpc dial ----

func loadTLS(caPath string, skipVerify bool) (credentials.TransportCredentials, error) {
	if skipVerify {
		return credentials.NewTLS(&tls.Config{InsecureSkipVerify: true}), nil //nolint:gosec // dev only
	}
	if caPath == "" {
		return credentials.NewClientTLSFromCert(nil, ""), nil
	}
	pem, err := os.ReadFile(caPath)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("bad CA cert")
	}
	return credentials.NewTLS(&tls.Config{RootCAs: pool}), nil
}

func dialer(addr, caPath string, skipVerify, plaintext bool) func(ctx context.Context) (*grpc.ClientConn, error) {
	return func(ctx context.Context) (*grpc.ClientConn, error) {
		creds := insecure.NewCredentials()
		if !plaintext {
			var err error
			if creds, err = loadTLS(caPath, skipVerify); err != nil {
				return nil, err
			}
		}
		//nolint:staticcheck // DialContext is supported through 1.x; migrate when grpc.NewClient is stable
		return grpc.DialContext(ctx, addr, grpc.WithTransportCredentials(creds))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `zk CLI
Usage:
  zk -addr HOST:PORT [-cacert file | -insecure | -plaintext] <cmd> [args]

Commands:
  version
  register        -u <identifier> [-p <password>]
  login           -u <identifier> [-p <password>]   (saves tokens)
  refresh                                          (renews the access token)
  passwd          [-p <old>] [-new <new>] [entry.json ...]
                                                   (changes password, re-wraps entries in place)
  delete-account
  seal            -u <identifier> [-p <password>] [-aad <s>] -file <plaintext|->
  open            -u <identifier> [-p <password>] [-aad <s>] -file <entry.json>

Passwords not given with -p are read from the terminal.
`)
	os.Exit(2)
}

// main dispatches subcommands and configures TLS for RPC calls.
func main() {
	addr := flag.String("addr", "localhost:8443", "server addr")
	caPath := flag.String("cacert", "", "CA cert (PEM)")
	skipVerify := flag.Bool("insecure", false, "skip cert verify (dev)")
	plaintext := flag.Bool("plaintext", false, "no TLS at all (dev)")
	serverID := flag.String("server-id", pake.DefaultServerID, "server identity bound into OPAQUE")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &app{
		out:          os.Stdout,
		in:           os.Stdin,
		serverID:     *serverID,
		dial:         dialer(*addr, *caPath, *skipVerify, *plaintext),
		readPassword: promptPassword,
		store:        fileStore{dir: cfgDir()},
	}
	if err := a.run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			usage()
		}
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func readAll(in io.Reader, p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(in)
	}
	return os.ReadFile(p)
}
