// Command autokey encrypts, decrypts and attacks Autokey ciphertexts from the shell.
//
// Usage:
//
//	autokey encrypt -key SECRET -in message.txt
//	autokey decrypt -mode bytes -prompt -in report.pdf.enc
//	autokey findkey -in plain.txt -ct cipher.txt -trace
//
// In bytes mode the output defaults to <in>.enc on encryption and <in> without
// .enc on decryption. Text results go to stdout unless -out is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"autokey-backend/crypto"
)

type options struct {
	mode      string
	in        string
	out       string
	key       string
	prompt    bool
	trace     bool
	traceRows int
	ct        string
	align     string
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: autokey encrypt|decrypt|findkey [flags]\n")
	fmt.Fprintf(os.Stderr, "run 'autokey <command> -h' for the flags of a command\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "autokey: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.mode, "mode", "text", "cipher mode: text (A-Z, mod 26) or bytes (any file, mod 256)")
	fs.StringVar(&opts.in, "in", "-", "input file, - for stdin")
	fs.StringVar(&opts.out, "out", "", "output file (text default: stdout)")
	fs.StringVar(&opts.key, "key", "", "cipher key")
	fs.BoolVar(&opts.prompt, "prompt", false, "read the key from the terminal without echo")
	fs.BoolVar(&opts.trace, "trace", false, "print the step-by-step trace table to stderr")
	fs.IntVar(&opts.traceRows, "trace-rows", 100, "maximum trace rows to print, 0 for all")
	fs.StringVar(&opts.ct, "ct", "", "findkey: ciphertext file matching -in")
	fs.StringVar(&opts.align, "align", "positions", "findkey: pair symbols by positions or letters")

	switch command {
	case "encrypt", "decrypt", "findkey":
	case "-h", "--help", "help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if command == "findkey" {
		return runFindKey(opts, stdin, stdout)
	}

	if opts.prompt {
		key, err := promptForKey()
		if err != nil {
			return err
		}
		opts.key = key
	}

	decrypt := command == "decrypt"
	switch opts.mode {
	case "text":
		return runText(opts, decrypt, stdin, stdout)
	case "bytes":
		return runBytes(opts, decrypt, stdin)
	default:
		return fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func runText(opts options, decrypt bool, stdin io.Reader, stdout io.Writer) error {
	if err := crypto.ValidateTextKey(opts.key); err != nil {
		return err
	}

	text, err := readText(opts.in, stdin)
	if err != nil {
		return err
	}

	cipherFunc := crypto.EncryptText
	if decrypt {
		cipherFunc = crypto.DecryptText
	}

	result, trace, err := cipherFunc(text, opts.key)
	if err != nil {
		return err
	}

	if opts.trace {
		if err := writeTrace(os.Stderr, trace.Head(opts.traceRows), decrypt); err != nil {
			return err
		}
	}

	return writeOutput(opts.out, stdout, []byte(result+"\n"))
}

func runBytes(opts options, decrypt bool, stdin io.Reader) error {
	if err := crypto.ValidateKey(opts.key); err != nil {
		return err
	}

	data, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}

	var output []byte
	if decrypt {
		output, err = crypto.DecryptBytes(data, opts.key)
	} else {
		output, err = crypto.EncryptBytes(data, opts.key)
	}
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		if opts.in == "-" {
			return errors.New("-out is required when reading bytes from stdin")
		}
		out = bytesOutputName(opts.in, decrypt)
	}

	if err := os.WriteFile(out, output, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(output), out)
	return nil
}

func runFindKey(opts options, stdin io.Reader, stdout io.Writer) error {
	if opts.ct == "" {
		return errors.New("findkey needs -ct with the ciphertext file")
	}
	if opts.in == "-" && opts.ct == "-" {
		return errors.New("findkey cannot read both plaintext and ciphertext from stdin")
	}

	align, err := crypto.ParseAlignment(opts.align)
	if err != nil {
		return err
	}

	plaintext, err := readText(opts.in, stdin)
	if err != nil {
		return err
	}
	ciphertext, err := readText(opts.ct, stdin)
	if err != nil {
		return err
	}

	rec := crypto.Recover(plaintext, ciphertext, align)
	if opts.trace {
		if err := writeRecoveryTrace(os.Stderr, rec.Trace.Head(opts.traceRows)); err != nil {
			return err
		}
	}
	if !rec.Matched {
		fmt.Fprintln(os.Stderr, "key boundary not found, printing the whole derived keystream")
	}

	return writeOutput(opts.out, stdout, []byte(rec.Key+"\n"))
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func readText(path string, stdin io.Reader) (string, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s is not valid UTF-8 text, use -mode bytes", path)
	}
	return string(data), nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func bytesOutputName(in string, decrypt bool) string {
	if !decrypt {
		return in + ".enc"
	}
	if trimmed := strings.TrimSuffix(in, ".enc"); trimmed != in {
		return trimmed
	}
	return in + ".dec"
}
