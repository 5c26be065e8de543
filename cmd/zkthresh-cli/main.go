package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cryptographyteam/zk-thresh-pro/internal/auditlog"
	"github.com/cryptographyteam/zk-thresh-pro/internal/vsserr"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/keylifecycle"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/pedersen"
	"github.com/cryptographyteam/zk-thresh-pro/protocols/vss"
)

// Exit codes (spec §6): 0 success, 2 usage, 3 cryptographic failure, 4 I/O
// failure. verify is the one exception, returning 0/1 for accept/reject.
const (
	exitSuccess  = 0
	exitUsage    = 2
	exitCrypto   = 3
	exitIO       = 4
	exitVerifyOK = 0
	exitVerifyNo = 1
)

var (
	keyID       string
	threshold   int
	parties     int
	sharePaths  []string
	sharePath   string
	commitsPath string
	outDir      string

	logger *auditlog.Logger
	group  curve.Curve = curve.Secp256k1{}

	rootCmd = &cobra.Command{
		Use:   "zkthresh-cli",
		Short: "Demo harness for the threshold secret-sharing engine",
		Long: `zkthresh-cli is a demo harness around the verifiable threshold
secret-sharing engine: generate, split, recover, and verify. It is not the
core library — see protocols/vss and pkg/proof for that.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = auditlog.New(auditlog.ParseMode(os.Getenv("ZKT_COMPLIANCE_MODE")))
			return nil
		},
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Create and activate a key",
		RunE:  runGenerate,
	}

	splitCmd = &cobra.Command{
		Use:   "split",
		Short: "Split a key's secret into n verifiable shares",
		RunE:  runSplit,
	}

	recoverCmd = &cobra.Command{
		Use:   "recover",
		Short: "Reconstruct a secret from share blobs",
		RunE:  runRecover,
	}

	verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify a share against its proof and commitment vector",
		RunE:  runVerify,
	}
)

func init() {
	generateCmd.Flags().StringVar(&keyID, "id", "", "key identifier (required)")
	generateCmd.MarkFlagRequired("id")

	splitCmd.Flags().StringVar(&keyID, "id", "", "key identifier (required)")
	splitCmd.Flags().IntVar(&threshold, "t", 0, "threshold (required)")
	splitCmd.Flags().IntVar(&parties, "n", 0, "total shares (required)")
	splitCmd.Flags().StringVar(&outDir, "out", ".", "directory to write share/commitment blobs to")
	splitCmd.MarkFlagRequired("id")
	splitCmd.MarkFlagRequired("t")
	splitCmd.MarkFlagRequired("n")

	recoverCmd.Flags().StringSliceVar(&sharePaths, "shares", nil, "paths to share blobs (required, >= t)")
	recoverCmd.Flags().IntVar(&threshold, "t", 0, "threshold (required)")
	recoverCmd.MarkFlagRequired("shares")
	recoverCmd.MarkFlagRequired("t")

	verifyCmd.Flags().StringVar(&sharePath, "share", "", "path to a share blob (required)")
	verifyCmd.Flags().StringVar(&commitsPath, "commitments", "", "path to a commitment-vector blob (required)")
	verifyCmd.MarkFlagRequired("share")
	verifyCmd.MarkFlagRequired("commitments")

	rootCmd.AddCommand(generateCmd, splitCmd, recoverCmd, verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	secret, err := group.RandomScalar(rand.Reader)
	if err != nil {
		fail(exitCrypto, vsserr.New(vsserr.RngUnavailable, err.Error()))
	}
	defer secret.Zeroize()

	rec := keylifecycle.New(keyID)
	if err := rec.Transition(keylifecycle.Active, secret); err != nil {
		fail(exitCrypto, err)
	}

	meta, err := rec.MarshalMeta()
	if err != nil {
		fail(exitIO, err)
	}
	path := keyID + ".meta.cbor"
	if err := os.WriteFile(path, meta, 0o600); err != nil {
		fail(exitIO, vsserr.New(vsserr.Internal, err.Error()))
	}

	logger.Record("generate", string(rec.State()))
	fmt.Printf("key %q activated, metadata written to %s\n", keyID, path)
	return nil
}

func runSplit(cmd *cobra.Command, args []string) error {
	if threshold < 2 || parties < threshold {
		fail(exitUsage, vsserr.New(vsserr.InvalidInput, "threshold out of range"))
	}

	secret, err := group.RandomScalar(rand.Reader)
	if err != nil {
		fail(exitCrypto, vsserr.New(vsserr.RngUnavailable, err.Error()))
	}
	defer secret.Zeroize()

	shares, cv, err := vss.Split(group, secret, threshold, parties, rand.Reader)
	if err != nil {
		fail(exitCrypto, err)
	}

	if err := os.MkdirAll(outDir, 0o700); err != nil {
		fail(exitIO, vsserr.New(vsserr.Internal, err.Error()))
	}
	for _, s := range shares {
		path := fmt.Sprintf("%s/%s.share.%d", outDir, keyID, s.Index)
		if err := os.WriteFile(path, s.Bytes(group), 0o600); err != nil {
			fail(exitIO, vsserr.New(vsserr.Internal, err.Error()))
		}
	}
	cvPath := fmt.Sprintf("%s/%s.commitments", outDir, keyID)
	if err := os.WriteFile(cvPath, cv.Bytes(), 0o644); err != nil {
		fail(exitIO, vsserr.New(vsserr.Internal, err.Error()))
	}

	logger.Record("split", keyID)
	fmt.Printf("wrote %d shares and commitment vector to %s\n", parties, outDir)
	return nil
}

func runRecover(cmd *cobra.Command, args []string) error {
	shares := make([]vss.Share, 0, len(sharePaths))
	for _, p := range sharePaths {
		b, err := os.ReadFile(p)
		if err != nil {
			fail(exitIO, vsserr.New(vsserr.Internal, err.Error()))
		}
		s, err := vss.DecodeShare(group, b)
		if err != nil {
			fail(exitCrypto, err)
		}
		shares = append(shares, s)
	}

	secret, err := vss.Reconstruct(group, shares, threshold)
	if err != nil {
		fail(exitCrypto, err)
	}
	defer secret.Zeroize()

	logger.Record("recover", fmt.Sprintf("shares=%d", len(shares)))
	fmt.Println(hex.EncodeToString(secret.Bytes()))
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	shareBytes, err := os.ReadFile(sharePath)
	if err != nil {
		fail(exitIO, vsserr.New(vsserr.Internal, err.Error()))
	}
	cvBytes, err := os.ReadFile(commitsPath)
	if err != nil {
		fail(exitIO, vsserr.New(vsserr.Internal, err.Error()))
	}

	share, err := vss.DecodeShare(group, shareBytes)
	if err != nil {
		logger.Record("verify", err.Error())
		os.Exit(exitVerifyNo)
	}
	cv, err := pedersen.DecodeCommitmentVector(group, cvBytes)
	if err != nil {
		logger.Record("verify", err.Error())
		os.Exit(exitVerifyNo)
	}

	ok := vss.VerifyProof(group, share) && vss.VerifyShareAgainstCommitments(group, share, cv)
	logger.Record("verify", fmt.Sprintf("index=%d ok=%v", share.Index, ok))
	if ok {
		fmt.Println("VALID")
		os.Exit(exitVerifyOK)
	}
	fmt.Println("INVALID")
	os.Exit(exitVerifyNo)
	return nil
}

func fail(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}
