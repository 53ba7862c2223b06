// Package main provides the rsa-lab-cli command line interface for the
// RSA lab operations.
package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	rsalab "github.com/cryptoteach/rsa-lab-go"
	"github.com/cryptoteach/rsa-lab-go/codec"
	"github.com/cryptoteach/rsa-lab-go/keygen"
)

const (
	version = "1.0.0"
	appName = "rsa-lab-cli"
)

// CLIConfig holds CLI configuration shared by the subcommands.
type CLIConfig struct {
	OutputFile string
	Verbose    bool
	Timing     bool
	Trace      bool
}

// KeyPairExport represents an exported keypair.
type KeyPairExport struct {
	N           string `json:"n"`
	E           string `json:"e"`
	D           string `json:"d"`
	Fingerprint string `json:"fingerprint"`
	CreatedAt   string `json:"created_at"`
}

// CipherExport represents an exported cipher block sequence.
type CipherExport struct {
	Blocks    []string `json:"blocks"`
	BlockSize int      `json:"block_size"`
}

// PlaintextExport represents a decrypted message.
type PlaintextExport struct {
	Plaintext string `json:"plaintext"`
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "help", "--help", "-h":
		printUsage()
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, version)
		fmt.Printf("rsa-lab library version %s\n", rsalab.Version)
	case "keygen":
		runKeygen(os.Args[2:])
	case "encrypt":
		runEncrypt(os.Args[2:])
	case "decrypt":
		runDecrypt(os.Args[2:])
	case "demo":
		runDemo()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Educational textbook RSA CLI

USAGE:
    %s <COMMAND> [OPTIONS]

COMMANDS:
    keygen      Generate a keypair from primes p, q and exponent e
    encrypt     Encrypt an A-Z message into cipher blocks
    decrypt     Decrypt cipher blocks back into text
    demo        Run the classic p=61, q=53, e=17 walkthrough
    version     Show version information
    help        Show this help message

OPTIONS:
    --output <file>   Output file (default: stdout)
    --verbose         Verbose output
    --timing          Show timing information
    --trace           Print each square-and-multiply step

EXAMPLES:
    # Generate the classic lab keypair
    %s keygen --p 61 --q 53 --e 17

    # Encrypt a message under the public key
    %s encrypt --e 17 --n 3233 --message "ATTACK"

    # Decrypt the resulting blocks with the private key
    %s decrypt --d 2753 --n 3233 --blocks "615,3081,2502"

    # Watch the exponentiation steps
    %s encrypt --e 17 --n 3233 --message "AT" --trace
`, appName, appName, appName, appName, appName, appName)
}

func runKeygen(args []string) {
	config := parseConfig(args)
	p := requireBigInt(args, "--p")
	q := requireBigInt(args, "--q")
	e := requireBigInt(args, "--e")

	start := time.Now()
	kp, err := keygen.GenerateKeys(p, q, e)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating keypair: %v\n", err)
		os.Exit(1)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Key generation took: %v\n", elapsed)
	}

	export := KeyPairExport{
		N:           kp.Public.N.String(),
		E:           kp.Public.E.String(),
		D:           kp.Private.D.String(),
		Fingerprint: rsalab.Fingerprint(kp.Public),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	output, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
		os.Exit(1)
	}
	writeOutput(output, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Generated keypair with fingerprint %s\n", export.Fingerprint)
		fmt.Fprintf(os.Stderr, "n = %s (%d bits)\n", export.N, kp.Public.N.BitLen())
	}
}

func runEncrypt(args []string) {
	config := parseConfig(args)
	e := requireBigInt(args, "--e")
	n := requireBigInt(args, "--n")
	message := getArg(args, "--message", "-m")

	if message == "" {
		if inputFile := getArg(args, "--input", "-i"); inputFile != "" {
			data, err := os.ReadFile(inputFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
				os.Exit(1)
			}
			message = strings.TrimSpace(string(data))
		}
	}
	if message == "" {
		fmt.Fprintf(os.Stderr, "Error: --message or --input is required\n")
		os.Exit(1)
	}

	start := time.Now()
	blocks, err := codec.EncryptMessageTrace(message, e, n, traceSink(config))
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encrypting: %v\n", err)
		os.Exit(1)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Encryption took: %v\n", elapsed)
	}

	k, _ := codec.BlockSize(n)
	export := CipherExport{Blocks: formatBlocks(blocks), BlockSize: k}

	output, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
		os.Exit(1)
	}
	writeOutput(output, config.OutputFile)

	if config.Verbose {
		fmt.Fprintf(os.Stderr, "Encrypted %d symbols into %d blocks of %d\n",
			len(message), len(blocks), k)
	}
}

func runDecrypt(args []string) {
	config := parseConfig(args)
	d := requireBigInt(args, "--d")
	n := requireBigInt(args, "--n")
	blocksArg := getArg(args, "--blocks", "-b")

	if blocksArg == "" {
		fmt.Fprintf(os.Stderr, "Error: --blocks is required (comma-separated integers)\n")
		os.Exit(1)
	}

	blocks, err := parseBlocks(blocksArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing blocks: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	plaintext, err := codec.DecryptMessageTrace(blocks, d, n, traceSink(config))
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decrypting: %v\n", err)
		os.Exit(1)
	}

	if config.Timing {
		fmt.Fprintf(os.Stderr, "Decryption took: %v\n", elapsed)
	}

	output, err := json.MarshalIndent(PlaintextExport{Plaintext: plaintext}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling output: %v\n", err)
		os.Exit(1)
	}
	writeOutput(output, config.OutputFile)
}

// runDemo reproduces the classic lab walkthrough: p=61, q=53, e=17 and
// the message "HELLO".
func runDemo() {
	p, q, e := big.NewInt(61), big.NewInt(53), big.NewInt(17)
	message := "HELLO"

	fmt.Println("RSA Lab Demonstration")
	fmt.Println("=====================")
	fmt.Printf("p = %v, q = %v, e = %v\n\n", p, q, e)

	kp, err := keygen.GenerateKeys(p, q, e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Key generation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("n = p*q = %v\n", kp.Public.N)
	fmt.Printf("d = e^-1 mod phi(n) = %v\n", kp.Private.D)
	fmt.Printf("fingerprint = %s\n\n", rsalab.Fingerprint(kp.Public))

	k, err := codec.BlockSize(kp.Public.N)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Block size: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Message: %q, %d symbols per block (A=0 .. Z=25, radix %d)\n\n",
		message, k, codec.Radix)

	fmt.Println("Exponentiation steps for the first block:")
	inits := 0
	blocks, err := codec.EncryptMessageTrace(message, kp.Public.E, kp.Public.N,
		func(s rsalab.TraceStep) {
			if s.Op == rsalab.TraceInit {
				inits++
			}
			if inits > 1 {
				return
			}
			fmt.Printf("  bit %d: %-8s -> %v\n", s.Bit, s.Op, s.Value)
		})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Encryption failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nCipher blocks: %v\n\n", formatBlocks(blocks))

	plaintext, err := codec.DecryptMessage(blocks, kp.Private.D, kp.Private.N)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decryption failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Decrypted: %q (short final group padded with %q)\n", plaintext, string(rune(codec.PadSymbol)))
	fmt.Println("\nDemo complete!")
}

// ============================================================================
// Utility Functions
// ============================================================================

func parseConfig(args []string) CLIConfig {
	return CLIConfig{
		OutputFile: getArg(args, "--output", "-o"),
		Verbose:    hasFlag(args, "--verbose", "-V"),
		Timing:     hasFlag(args, "--timing", "-t"),
		Trace:      hasFlag(args, "--trace", "-T"),
	}
}

// traceSink returns a stderr trace printer, or nil when tracing is off.
func traceSink(config CLIConfig) rsalab.TraceFunc {
	if !config.Trace {
		return nil
	}
	return func(s rsalab.TraceStep) {
		fmt.Fprintf(os.Stderr, "trace: bit %d %-8s %v\n", s.Bit, s.Op, s.Value)
	}
}

func getArg(args []string, long, short string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == long || args[i] == short {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, long, short string) bool {
	for _, arg := range args {
		if arg == long || arg == short {
			return true
		}
	}
	return false
}

// requireBigInt parses a required decimal integer option or exits.
func requireBigInt(args []string, name string) *big.Int {
	raw := getArg(args, name, "")
	if raw == "" {
		fmt.Fprintf(os.Stderr, "Error: %s is required\n", name)
		os.Exit(1)
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s must be a decimal integer, got %q\n", name, raw)
		os.Exit(1)
	}
	return v
}

func parseBlocks(raw string) ([]*big.Int, error) {
	parts := strings.Split(raw, ",")
	blocks := make([]*big.Int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, ok := new(big.Int).SetString(part, 10)
		if !ok {
			return nil, fmt.Errorf("not a decimal integer: %q", part)
		}
		blocks = append(blocks, v)
	}
	return blocks, nil
}

func formatBlocks(blocks []*big.Int) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.String()
	}
	return out
}

func writeOutput(data []byte, outputFile string) {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(string(data))
}
