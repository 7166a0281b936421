package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"google.golang.org/grpc"

	"github.com/and161185/zk-journal/internal/client"
	"github.com/and161185/zk-journal/internal/crypto/clientcrypto"
)

var errUsage = errors.New("usage")

// entryFile is the on-disk form of a sealed entry. Byte fields are base64.
type entryFile struct {
	Algorithm  string `json:"alg"`
	Ciphertext []byte `json:"ciphertext"`
	Nonce      []byte `json:"nonce"`
	WrappedKey []byte `json:"wrapped_key"`
	WrapNonce  []byte `json:"wrap_nonce"`
}

func toEntryFile(e clientcrypto.SealedEntry) entryFile {
	return entryFile(e)
}

func (f entryFile) sealed() clientcrypto.SealedEntry {
	return clientcrypto.SealedEntry(f)
}

type app struct {
	out          io.Writer
	in           io.Reader
	serverID     string
	dial         func(ctx context.Context) (*grpc.ClientConn, error)
	readPassword func(prompt string) ([]byte, error)
	store        fileStore
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(a.out, "zk %s (%s)\n", version, buildDate)
		return nil
	case "register":
		return a.withClient(ctx, func(c *client.Client) error { return a.register(ctx, c, rest) })
	case "login":
		return a.withClient(ctx, func(c *client.Client) error { return a.login(ctx, c, rest) })
	case "refresh":
		return a.withClient(ctx, func(c *client.Client) error { return a.refresh(ctx, c) })
	case "passwd":
		return a.withClient(ctx, func(c *client.Client) error { return a.passwd(ctx, c, rest) })
	case "delete-account":
		return a.withClient(ctx, func(c *client.Client) error { return a.deleteAccount(ctx, c) })
	case "seal":
		return a.withClient(ctx, func(c *client.Client) error { return a.seal(ctx, c, rest) })
	case "open":
		return a.withClient(ctx, func(c *client.Client) error { return a.open(ctx, c, rest) })
	}
	return errUsage
}

func (a *app) withClient(ctx context.Context, fn func(c *client.Client) error) error {
	cc, err := a.dial(ctx)
	if err != nil {
		return err
	}
	defer cc.Close()
	return fn(client.New(cc, a.serverID))
}

// credentials parses -u and -p. A missing password is prompted for.
func (a *app) credentials(name string, args []string, extra func(fs *flag.FlagSet)) (string, []byte, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	u := fs.String("u", "", "identifier")
	p := fs.String("p", "", "password")
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return "", nil, fmt.Errorf("%s: %w", name, err)
	}
	if *u == "" {
		return "", nil, fmt.Errorf("%s: need -u", name)
	}
	if *p != "" {
		return *u, []byte(*p), nil
	}
	pw, err := a.readPassword("password: ")
	if err != nil {
		return "", nil, err
	}
	return *u, pw, nil
}

func (a *app) register(ctx context.Context, c *client.Client, args []string) error {
	id, pw, err := a.credentials("register", args, nil)
	if err != nil {
		return err
	}
	if _, err := c.Register(ctx, id, pw); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "registered")
	return nil
}

func (a *app) login(ctx context.Context, c *client.Client, args []string) error {
	id, pw, err := a.credentials("login", args, nil)
	if err != nil {
		return err
	}
	s, err := c.Login(ctx, id, pw)
	if err != nil {
		return err
	}
	if err := a.store.save(tokenFile{
		Identifier:   id,
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
		ExpiresAt:    s.Tokens.ExpiresAt,
	}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *app) refresh(ctx context.Context, c *client.Client) error {
	tf, err := a.store.load()
	if err != nil {
		return err
	}
	tok, err := c.Refresh(ctx, tf.RefreshToken)
	if err != nil {
		return err
	}
	tf.AccessToken, tf.ExpiresAt = tok.AccessToken, tok.ExpiresAt
	if err := a.store.save(tf); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

// passwd logs in with the old password to recover the old master key,
// re-registers under the new one, then re-wraps each entry file in place.
func (a *app) passwd(ctx context.Context, c *client.Client, args []string) error {
	tf, err := a.store.load()
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	oldFlag := fs.String("p", "", "current password")
	newFlag := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("passwd: %w", err)
	}
	oldPw, err := a.passwordOr(*oldFlag, "current password: ")
	if err != nil {
		return err
	}
	newPw, err := a.passwordOr(*newFlag, "new password: ")
	if err != nil {
		return err
	}

	s, err := c.Login(ctx, tf.Identifier, oldPw)
	if err != nil {
		return err
	}
	oldMaster, err := clientcrypto.DeriveMasterKey(s.ExportKey)
	if err != nil {
		return err
	}
	// Every entry must open under the old key before the password moves.
	entries := make([]clientcrypto.SealedEntry, fs.NArg())
	for i, path := range fs.Args() {
		e, err := readEntry(path)
		if err == nil {
			_, err = clientcrypto.Rewrap(oldMaster, oldMaster, e)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		entries[i] = e
	}

	newExport, err := c.ChangePassword(ctx, s.Tokens.AccessToken, tf.Identifier, newPw)
	if err != nil {
		return err
	}
	newMaster, err := clientcrypto.DeriveMasterKey(newExport)
	if err != nil {
		return err
	}
	for i, path := range fs.Args() {
		if err := writeRewrapped(path, entries[i], oldMaster, newMaster); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := a.store.save(tokenFile{
		Identifier:   tf.Identifier,
		AccessToken:  s.Tokens.AccessToken,
		RefreshToken: s.Tokens.RefreshToken,
		ExpiresAt:    s.Tokens.ExpiresAt,
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "password changed, %d entries re-wrapped\n", fs.NArg())
	return nil
}

func (a *app) passwordOr(v, prompt string) ([]byte, error) {
	if v != "" {
		return []byte(v), nil
	}
	return a.readPassword(prompt)
}

func writeRewrapped(path string, e clientcrypto.SealedEntry, oldMaster, newMaster []byte) error {
	moved, err := clientcrypto.Rewrap(oldMaster, newMaster, e)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(toEntryFile(moved), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func readEntry(path string) (clientcrypto.SealedEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return clientcrypto.SealedEntry{}, err
	}
	var f entryFile
	if err := json.Unmarshal(b, &f); err != nil {
		return clientcrypto.SealedEntry{}, fmt.Errorf("bad entry file: %w", err)
	}
	return f.sealed(), nil
}

func (a *app) deleteAccount(ctx context.Context, c *client.Client) error {
	tf, err := a.store.access()
	if err != nil {
		return err
	}
	if err := c.DeleteAccount(ctx, tf.AccessToken); err != nil {
		return err
	}
	if err := a.store.clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "deleted")
	return nil
}

// keyring runs a fresh login; the master key is never cached on disk.
func (a *app) keyring(ctx context.Context, c *client.Client, name string, args []string) (kr *clientcrypto.Keyring, aad []byte, file string, err error) {
	var aadFlag, fileFlag *string
	id, pw, err := a.credentials(name, args, func(fs *flag.FlagSet) {
		aadFlag = fs.String("aad", "", "associated data bound to the entry")
		fileFlag = fs.String("file", "", "input file")
	})
	if err != nil {
		return nil, nil, "", err
	}
	if *fileFlag == "" {
		return nil, nil, "", fmt.Errorf("%s: need -file", name)
	}
	s, err := c.Login(ctx, id, pw)
	if err != nil {
		return nil, nil, "", err
	}
	kr, err = clientcrypto.NewKeyring(s.ExportKey)
	if err != nil {
		return nil, nil, "", err
	}
	return kr, []byte(*aadFlag), *fileFlag, nil
}

func (a *app) seal(ctx context.Context, c *client.Client, args []string) error {
	kr, aad, file, err := a.keyring(ctx, c, "seal", args)
	if err != nil {
		return err
	}
	defer kr.Close()

	plain, err := readAll(a.in, file)
	if err != nil {
		return err
	}
	e, err := kr.Seal(plain, aad)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(toEntryFile(e))
}

func (a *app) open(ctx context.Context, c *client.Client, args []string) error {
	kr, aad, file, err := a.keyring(ctx, c, "open", args)
	if err != nil {
		return err
	}
	defer kr.Close()

	e, err := readEntry(file)
	if err != nil {
		return err
	}
	pt, err := kr.Open(e, aad)
	if err != nil {
		return err
	}
	_, err = a.out.Write(pt)
	return err
}
