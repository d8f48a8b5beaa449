// Copyright 2025 walteh LLC
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

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// 👋 greeting prints the name in block letters followed by the version
func greeting(w io.Writer) {
	letters, err := pterm.DefaultBigText.
		WithLetters(putils.LettersFromStringWithStyle("abjure", pterm.NewStyle(pterm.FgGray))).
		Srender()
	if err == nil {
		fmt.Fprint(w, letters)
	}
	fmt.Fprintf(w, "Version %s\n", pterm.LightYellow(GetVersionInfo().Version))
}
