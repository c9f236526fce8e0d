// qrun
// Copyright (C) 2024-2026+ the qrun contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package notify

import (
	"fmt"
	"net/smtp"
)

// SMTPNotifier sends the report as a plain-text email through a local or
// relay SMTP server, talking to net/smtp directly rather than pulling in a
// client library for what is a handful of lines against the standard
// library.
type SMTPNotifier struct {
	Addr string // host:port of the SMTP relay, e.g. "localhost:25"
	From string
	To   []string
}

// Notify implements Notifier.
func (n SMTPNotifier) Notify(subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		n.From, joinAddrs(n.To), subject, body)
	return smtp.SendMail(n.Addr, nil, n.From, n.To, []byte(msg))
}

func joinAddrs(addrs []string) string {
	s := ""
	for i, a := range addrs {
		if i > 0 {
			s += ", "
		}
		s += a
	}
	return s
}
