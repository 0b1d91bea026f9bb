/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("tomcrypt", func() {
	var (
		tempDir    string
		configPath string
	)

	run := func(stdin string, args ...string) *gexec.Session {
		cmd := exec.Command(tomcryptPath, append([]string{"--config", configPath}, args...)...)
		if stdin != "" {
			cmd.Stdin = strings.NewReader(stdin)
		}
		sess, err := gexec.Start(cmd, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(sess, "30s").Should(gexec.Exit())
		return sess
	}

	keygen := func(algorithm string) string {
		sess := run("", "keygen", "--algorithm", algorithm)
		Expect(sess).To(gexec.Exit(0))
		ski := strings.TrimSpace(string(sess.Out.Contents()))
		Expect(ski).To(MatchRegexp("^[0-9a-f]{64}$"))
		return ski
	}

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "tomcrypt")
		Expect(err).NotTo(HaveOccurred())

		configPath = filepath.Join(tempDir, "tomcrypt.yaml")
		config := fmt.Sprintf(`
BCCSP:
  Default: SW
  SW:
    Hash: SHA2
    Security: 256
    FileKeyStore:
      KeyStore: %s
Logging:
  Spec: error
`, filepath.Join(tempDir, "keystore"))
		Expect(os.WriteFile(configPath, []byte(config), 0o600)).To(Succeed())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("prints its version", func() {
		sess := run("", "--version")
		Expect(sess).To(gexec.Exit(0))
		Expect(sess.Err).To(gbytes.Say("Version: latest"))
	})

	It("prints the effective configuration", func() {
		sess := run("", "config")
		Expect(sess).To(gexec.Exit(0))
		Expect(sess.Out).To(gbytes.Say("BCCSP:"))
		Expect(sess.Out).To(gbytes.Say("Default: SW"))
		Expect(sess.Out).To(gbytes.Say("KeyStore: " + filepath.Join(tempDir, "keystore")))
	})

	It("redacts the key store password", func() {
		cmd := exec.Command(tomcryptPath, "--config", configPath, "config")
		cmd.Env = append(os.Environ(), "TOMCRYPT_BCCSP_SW_PASSWORD=s3cr3t")
		sess, err := gexec.Start(cmd, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(sess, "30s").Should(gexec.Exit(0))
		Expect(sess.Out).To(gbytes.Say("Password: <redacted>"))
		Expect(string(sess.Out.Contents())).NotTo(ContainSubstring("s3cr3t"))
	})

	It("signs and verifies messages", func() {
		ski := keygen("ecdsa-p256")

		msgPath := filepath.Join(tempDir, "msg")
		Expect(os.WriteFile(msgPath, []byte("hello tomcrypt"), 0o600)).To(Succeed())
		sigPath := filepath.Join(tempDir, "msg.sig")

		sess := run("", "sign", ski, "--in", msgPath, "--out", sigPath, "--deterministic")
		Expect(sess).To(gexec.Exit(0))

		sess = run("", "verify", "--ski", ski, "--in", msgPath, "--sig", sigPath)
		Expect(sess).To(gexec.Exit(0))
		Expect(sess.Out).To(gbytes.Say("signature OK"))

		pubPath := filepath.Join(tempDir, "pub.pem")
		sess = run("", "pubkey", ski)
		Expect(sess).To(gexec.Exit(0))
		Expect(os.WriteFile(pubPath, sess.Out.Contents(), 0o600)).To(Succeed())

		sess = run("hello tomcrypt", "verify", "--pubkey", pubPath, "--sig", sigPath)
		Expect(sess).To(gexec.Exit(0))

		sess = run("hello world", "verify", "--pubkey", pubPath, "--sig", sigPath)
		Expect(sess).To(gexec.Exit(1))
		Expect(sess.Err).To(gbytes.Say("signature verification failed"))
	})

	It("accepts hex encoded DER signatures", func() {
		ski := keygen("ecdsa")

		sess := run("payload", "sign", ski, "--der")
		Expect(sess).To(gexec.Exit(0))
		sigPath := filepath.Join(tempDir, "sig.hex")
		Expect(os.WriteFile(sigPath, sess.Out.Contents(), 0o600)).To(Succeed())

		sess = run("payload", "verify", "--ski", ski, "--sig", sigPath, "--der")
		Expect(sess).To(gexec.Exit(0))
	})

	It("seals and opens data", func() {
		ski := keygen("aes256")

		sealedPath := filepath.Join(tempDir, "sealed")
		sess := run("attack at dawn", "seal", ski, "--out", sealedPath, "--ad", "header", "--tag-len", "12")
		Expect(sess).To(gexec.Exit(0))

		sealed, err := os.ReadFile(sealedPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(sealed).To(HaveLen(16 + len("attack at dawn") + 12))

		sess = run("", "open", ski, "--in", sealedPath, "--ad", "header", "--tag-len", "12")
		Expect(sess).To(gexec.Exit(0))
		Expect(string(sess.Out.Contents())).To(Equal("attack at dawn"))

		sess = run("", "open", ski, "--in", sealedPath, "--ad", "other", "--tag-len", "12")
		Expect(sess).To(gexec.Exit(1))
		Expect(sess.Out.Contents()).To(BeEmpty())
		Expect(sess.Err).To(gbytes.Say("message authentication failed"))
	})

	It("rejects short tags", func() {
		ski := keygen("aes")

		sess := run("data", "seal", ski, "--tag-len", "4")
		Expect(sess).To(gexec.Exit(1))
		Expect(sess.Err).To(gbytes.Say("invalid tag length"))
	})

	It("prints metrics on request", func() {
		sess := run("", "--metrics", "keygen", "--algorithm", "aes128")
		Expect(sess).To(gexec.Exit(0))
		Expect(sess.Err).To(gbytes.Say(`tomcrypt_bccsp_operations\{operation="key_gen",result="success"\} 1`))
		Expect(sess.Err).To(gbytes.Say(`tomcrypt_runtime_goroutines`))
	})

	It("reports unknown keys", func() {
		sess := run("", "pubkey", strings.Repeat("ab", 32))
		Expect(sess).To(gexec.Exit(1))
		Expect(sess.Err).To(gbytes.Say("Error:"))
	})

	It("rejects bad arguments", func() {
		sess := run("", "keygen", "--algorithm", "rsa")
		Expect(sess).To(gexec.Exit(1))
		Expect(sess.Err).To(gbytes.Say("parsing arguments"))

		sess = run("", "verify", "--sig", configPath)
		Expect(sess).To(gexec.Exit(1))
		Expect(sess.Err).To(gbytes.Say("one of --ski or --pubkey is required"))
	})
})
