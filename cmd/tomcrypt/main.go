/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperledger/tomcrypt/bccsp"
	"github.com/hyperledger/tomcrypt/bccsp/factory"
	"github.com/hyperledger/tomcrypt/common/flogging"
	floggingmetrics "github.com/hyperledger/tomcrypt/common/flogging/metrics"
	"github.com/hyperledger/tomcrypt/common/metadata"
	"github.com/hyperledger/tomcrypt/common/metrics/goruntime"
	"github.com/hyperledger/tomcrypt/internal/tomcrypt"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("tomcrypt", "Software crypto service provider for EAX and ECC.")

	configPath  = app.Flag("config", "Path to the YAML configuration file. Defaults to tomcrypt.yaml in $TOMCRYPT_CFG_PATH, the working directory or /etc/hyperledger/tomcrypt.").Short('c').String()
	logSpec     = app.Flag("logging-spec", "Logging specification, overrides the configuration file.").String()
	logFormat   = app.Flag("logging-format", "Log record format: json, logfmt or a console format string.").String()
	showMetrics = app.Flag("metrics", "Print operation metrics to stderr on exit.").Bool()

	keygen          = app.Command("keygen", "Generate a key in the configured key store and print its SKI.")
	keygenAlgorithm = keygen.Flag("algorithm", "Key algorithm.").Short('a').Default("ecdsa").Enum(tomcrypt.KeyGenAlgorithms()...)
	keygenPubOut    = keygen.Flag("pubkey-out", "Also write the PEM public key of an ECDSA key to this file.").String()

	pubkey    = app.Command("pubkey", "Print the PEM public key of a stored ECDSA key.")
	pubkeySKI = pubkey.Arg("ski", "Hex encoded subject key identifier.").Required().String()

	sign              = app.Command("sign", "Sign a message with a stored ECDSA key.")
	signSKI           = sign.Arg("ski", "Hex encoded subject key identifier.").Required().String()
	signIn            = sign.Flag("in", "Message file, stdin when omitted.").Short('i').String()
	signOut           = sign.Flag("out", "Signature file, hex on stdout when omitted.").Short('o').String()
	signDeterministic = sign.Flag("deterministic", "Derive the signature nonce from the key and digest.").Bool()
	signDER           = sign.Flag("der", "Encode the signature as ASN.1 DER instead of r||s.").Bool()

	verify       = app.Command("verify", "Verify a signature with a stored key or a PEM public key.")
	verifySKI    = verify.Flag("ski", "Hex encoded subject key identifier.").String()
	verifyPubKey = verify.Flag("pubkey", "PEM public key file.").ExistingFile()
	verifyIn     = verify.Flag("in", "Message file, stdin when omitted.").Short('i').String()
	verifySig    = verify.Flag("sig", "Signature file.").Required().ExistingFile()
	verifyDER    = verify.Flag("der", "The signature is ASN.1 DER encoded.").Bool()

	seal       = app.Command("seal", "Encrypt and authenticate data with a stored AES key.")
	sealSKI    = seal.Arg("ski", "Hex encoded subject key identifier.").Required().String()
	sealIn     = seal.Flag("in", "Plaintext file, stdin when omitted.").Short('i').String()
	sealOut    = seal.Flag("out", "Output file, stdout when omitted.").Short('o').String()
	sealAD     = seal.Flag("ad", "Additional authenticated data.").String()
	sealTagLen = seal.Flag("tag-len", "Tag length in bytes, 8 to 16.").Int()

	open       = app.Command("open", "Verify and decrypt data sealed with a stored AES key.")
	openSKI    = open.Arg("ski", "Hex encoded subject key identifier.").Required().String()
	openIn     = open.Flag("in", "Sealed file, stdin when omitted.").Short('i').String()
	openOut    = open.Flag("out", "Plaintext file, stdout when omitted.").Short('o').String()
	openAD     = open.Flag("ad", "Additional authenticated data.").String()
	openTagLen = open.Flag("tag-len", "Tag length in bytes, 8 to 16.").Int()

	showConfig = app.Command("config", "Print the effective configuration as YAML.")
)

func main() {
	app.Version(metadata.GetVersionInfo())
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	command, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "parsing arguments: %s. Try --help\n", err)
		return 1
	}

	conf, err := tomcrypt.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	if *logSpec != "" {
		conf.Logging.Spec = *logSpec
	}
	if *logFormat != "" {
		conf.Logging.Format = *logFormat
	}
	err = flogging.Global.Apply(flogging.Config{
		Format:  conf.Logging.Format,
		LogSpec: conf.Logging.Spec,
		Writer:  stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid logging configuration: %s\n", err)
		return 1
	}

	if command == showConfig.FullCommand() {
		return exitStatus(stderr, tomcrypt.WriteConfig(stdout, conf))
	}

	f := &factory.SWFactory{}
	if *showMetrics {
		provider, registry := tomcrypt.NewMetricsProvider()
		f.MetricsProvider = provider
		flogging.SetObserver(floggingmetrics.NewObserver(provider))
		collector := goruntime.NewCollector(provider)
		defer func() {
			flogging.SetObserver(nil)
			collector.Publish(goruntime.CollectStats())
			tomcrypt.WriteMetrics(stderr, registry)
		}()
	}

	csp, err := factory.GetBCCSPFromFactory(conf.BCCSP, f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	if c, ok := csp.(io.Closer); ok {
		defer c.Close()
	}

	switch command {
	case keygen.FullCommand():
		err = runKeyGen(csp, stdout)
	case pubkey.FullCommand():
		err = runPubKey(csp, stdout)
	case sign.FullCommand():
		err = runSign(csp, stdin, stdout)
	case verify.FullCommand():
		err = runVerify(csp, stdin, stdout)
	case seal.FullCommand():
		err = runSeal(csp, stdin, stdout)
	case open.FullCommand():
		err = runOpen(csp, stdin, stdout)
	}
	return exitStatus(stderr, err)
}

func exitStatus(stderr io.Writer, err error) int {
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func runKeyGen(csp bccsp.BCCSP, stdout io.Writer) error {
	k, err := tomcrypt.KeyGen(csp, *keygenAlgorithm)
	if err != nil {
		return err
	}
	if *keygenPubOut != "" {
		raw, err := tomcrypt.PublicKeyPEM(k)
		if err != nil {
			return err
		}
		if err := tomcrypt.WriteOutput(*keygenPubOut, raw, stdout); err != nil {
			return err
		}
	}
	fmt.Fprintln(stdout, hex.EncodeToString(k.SKI()))
	return nil
}

func runPubKey(csp bccsp.BCCSP, stdout io.Writer) error {
	k, err := tomcrypt.GetKey(csp, *pubkeySKI)
	if err != nil {
		return err
	}
	raw, err := tomcrypt.PublicKeyPEM(k)
	if err != nil {
		return err
	}
	_, err = stdout.Write(raw)
	return err
}

func runSign(csp bccsp.BCCSP, stdin io.Reader, stdout io.Writer) error {
	k, err := tomcrypt.GetKey(csp, *signSKI)
	if err != nil {
		return err
	}
	msg, err := tomcrypt.ReadInput(*signIn, stdin)
	if err != nil {
		return err
	}
	sig, err := tomcrypt.Sign(csp, k, msg, tomcrypt.SignOptions{Deterministic: *signDeterministic, DER: *signDER})
	if err != nil {
		return err
	}
	if *signOut == "" {
		_, err = fmt.Fprintln(stdout, hex.EncodeToString(sig))
		return err
	}
	return tomcrypt.WriteOutput(*signOut, sig, stdout)
}

func runVerify(csp bccsp.BCCSP, stdin io.Reader, stdout io.Writer) error {
	var (
		k   bccsp.Key
		err error
	)
	switch {
	case *verifySKI != "" && *verifyPubKey != "":
		return errors.New("--ski and --pubkey are mutually exclusive")
	case *verifySKI != "":
		k, err = tomcrypt.GetKey(csp, *verifySKI)
	case *verifyPubKey != "":
		var raw []byte
		if raw, err = os.ReadFile(*verifyPubKey); err == nil {
			k, err = tomcrypt.ImportPublicKeyPEM(csp, raw)
		}
	default:
		return errors.New("one of --ski or --pubkey is required")
	}
	if err != nil {
		return err
	}

	msg, err := tomcrypt.ReadInput(*verifyIn, stdin)
	if err != nil {
		return err
	}
	sig, err := readSignature(*verifySig)
	if err != nil {
		return err
	}

	valid, err := tomcrypt.Verify(csp, k, msg, sig, tomcrypt.SignOptions{DER: *verifyDER})
	if err != nil {
		return err
	}
	if !valid {
		return errors.New("signature verification failed")
	}
	fmt.Fprintln(stdout, "signature OK")
	return nil
}

// readSignature accepts the binary signature written by sign --out as well
// as the hex form printed to stdout.
func readSignature(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if decoded, err := hex.DecodeString(strings.TrimSpace(string(raw))); err == nil {
		return decoded, nil
	}
	return raw, nil
}

func runSeal(csp bccsp.BCCSP, stdin io.Reader, stdout io.Writer) error {
	k, err := tomcrypt.GetKey(csp, *sealSKI)
	if err != nil {
		return err
	}
	plaintext, err := tomcrypt.ReadInput(*sealIn, stdin)
	if err != nil {
		return err
	}
	sealed, err := tomcrypt.Seal(csp, k, plaintext, tomcrypt.SealOptions{AdditionalData: adBytes(*sealAD), TagLen: *sealTagLen})
	if err != nil {
		return err
	}
	return tomcrypt.WriteOutput(*sealOut, sealed, stdout)
}

func runOpen(csp bccsp.BCCSP, stdin io.Reader, stdout io.Writer) error {
	k, err := tomcrypt.GetKey(csp, *openSKI)
	if err != nil {
		return err
	}
	sealed, err := tomcrypt.ReadInput(*openIn, stdin)
	if err != nil {
		return err
	}
	plaintext, err := tomcrypt.Open(csp, k, sealed, tomcrypt.SealOptions{AdditionalData: adBytes(*openAD), TagLen: *openTagLen})
	if err != nil {
		return err
	}
	return tomcrypt.WriteOutput(*openOut, plaintext, stdout)
}

func adBytes(ad string) []byte {
	if ad == "" {
		return nil
	}
	return []byte(ad)
}
