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
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/blinklabs-io/gocbor/cmd/common"
)

type commandFunc func(f *common.GlobalFlags, args []string, data []byte, w io.Writer) error

var commands = map[string]commandFunc{
	"pretty": runPretty,
	"diag":   runDiag,
	"events": runEvents,
	"check":  runCheck,
	"cose":   runCose,
	"value":  runValue,
}

func main() {
	f := common.NewGlobalFlags()
	f.Parse()

	slog.SetDefault(f.NewLogger(os.Stderr))

	if len(f.Flagset.Args()) == 0 {
		fmt.Printf("You must specify a subcommand (pretty, diag, events, check, cose or value)\n")
		os.Exit(1)
	}
	cmd, ok := commands[f.Flagset.Arg(0)]
	if !ok {
		fmt.Printf("Unknown subcommand: %s\n", f.Flagset.Arg(0))
		os.Exit(1)
	}
	data, err := common.LoadInput(f, os.Stdin)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if err := cmd(f, f.Flagset.Args()[1:], data, os.Stdout); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
}
