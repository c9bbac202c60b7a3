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
	"context"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/cuttercookie/pkg/errkind"
	"gitlab.com/tozd/go/errors"
)

// 📢 UserLogger reports the outcome of a run
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 🔍 LogValidation prints the final banner. Failures print the error kind
// and the cause chain, outermost first.
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}

	if err == nil {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
		u.log.Warn().Msg(description)
		return
	}

	if kind := errkind.KindOf(err); kind != "" {
		description += " (" + string(kind) + " error)"
	}
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
	for i, cause := range causeChain(err) {
		pterm.Error.Println(strings.Repeat("  ", i) + cause)
	}
	u.log.Debug().Err(err).Msg(description)
}

// causeChain lists the messages of err and each error it wraps, skipping
// layers that add nothing to the message below them
func causeChain(err error) []string {
	var chain []string
	prev := ""
	for e := err; e != nil; e = errors.Unwrap(e) {
		msg := e.Error()
		if msg == prev {
			continue
		}
		if len(chain) > 0 {
			// keep only what this layer adds in front of its cause
			last := chain[len(chain)-1]
			chain[len(chain)-1] = strings.TrimSuffix(strings.TrimSuffix(last, msg), ": ")
		}
		chain = append(chain, msg)
		prev = msg
	}

	out := chain[:0]
	for _, c := range chain {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
