// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package pinject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Mailer struct {
	Host   string
	Port   int
	secret string
}

type MailerParams struct {
	In

	Host    string
	Port    int
	Retries int
}

func TestCopyArgsToFields(t *testing.T) {
	t.Parallel()

	t.Run("copies same-named fields", func(t *testing.T) {
		t.Parallel()

		m := &Mailer{secret: "kept"}
		require.NoError(t, CopyArgsToFields(m, MailerParams{Host: "smtp", Port: 25, Retries: 3}))
		assert.Equal(t, &Mailer{Host: "smtp", Port: 25, secret: "kept"}, m)
	})

	t.Run("pointer args", func(t *testing.T) {
		t.Parallel()

		m := new(Mailer)
		require.NoError(t, CopyArgsToFields(m, &MailerParams{Host: "smtp"}))
		assert.Equal(t, "smtp", m.Host)
	})

	t.Run("from a constructor", func(t *testing.T) {
		t.Parallel()

		newMailer := func(p MailerParams) (*Mailer, error) {
			m := new(Mailer)
			return m, CopyArgsToFields(m, p)
		}
		g, err := NewObjectGraph(bindSpec(func(bind BindFunc) {
			bind("host", ToInstance("smtp.example.com"))
			bind("port", ToInstance(587))
			bind("retries", ToInstance(1))
		}))
		require.NoError(t, err)

		v, err := g.Provide(newMailer)
		require.NoError(t, err)
		assert.Equal(t, &Mailer{Host: "smtp.example.com", Port: 587}, v)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, CopyArgsToFields(Mailer{}, MailerParams{}), ErrWrongArgType)
		assert.ErrorIs(t, CopyArgsToFields((*Mailer)(nil), MailerParams{}), ErrWrongArgType)
		assert.ErrorIs(t, CopyArgsToFields(nil, MailerParams{}), ErrWrongArgType)
		assert.ErrorIs(t, CopyArgsToFields(new(int), MailerParams{}), ErrWrongArgType)
		assert.ErrorIs(t, CopyArgsToFields(new(Mailer), 42), ErrWrongArgType)
	})
}
