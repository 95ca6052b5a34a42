// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"github.com/blinklabs-io/gocbor/cmd/common"
	"github.com/blinklabs-io/gocbor/cose"
)

type coseFlags struct {
	flagset  *flag.FlagSet
	pubKey   string
	detached string
}

func newCoseFlags() *coseFlags {
	f := &coseFlags{
		flagset: flag.NewFlagSet("cose", flag.ContinueOnError),
	}
	f.flagset.StringVar(
		&f.pubKey,
		"pubkey",
		"",
		"hex-encoded Ed25519 public key to verify the signature with",
	)
	f.flagset.StringVar(
		&f.detached,
		"detached",
		"",
		"hex-encoded detached content",
	)
	return f
}

// runCose describes a COSE_Sign1 and optionally verifies its signature
func runCose(_ *common.GlobalFlags, args []string, data []byte, w io.Writer) error {
	coseFlags := newCoseFlags()
	if err := coseFlags.flagset.Parse(args); err != nil {
		return fmt.Errorf("failed to parse subcommand args: %w", err)
	}
	alg, err := cose.Algorithm(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "alg: %d\n", alg)
	payload, err := cose.Payload(data)
	if err != nil {
		return err
	}
	if payload == nil {
		fmt.Fprintln(w, "payload: detached")
	} else {
		fmt.Fprintf(w, "payload: %x\n", payload)
	}
	if certs, err := cose.CertificateChain(data); err == nil {
		fmt.Fprintf(w, "certificates: %d\n", len(certs))
	}
	if coseFlags.pubKey == "" {
		return nil
	}
	pubKey, err := hex.DecodeString(coseFlags.pubKey)
	if err != nil {
		return fmt.Errorf("failed to decode public key: %w", err)
	}
	detached, err := hex.DecodeString(coseFlags.detached)
	if err != nil {
		return fmt.Errorf("failed to decode detached content: %w", err)
	}
	if _, err := cose.Verify1(ed25519.PublicKey(pubKey), data, detached); err != nil {
		return err
	}
	fmt.Fprintln(w, "signature: valid")
	return nil
}
