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

// Package notify sends status reports to whoever asked to be told about
// them: a mid-run alert as soon as a job fails, and the final run summary.
package notify

// Notifier delivers a plain-text status report.
type Notifier interface {
	Notify(subject, body string) error
}

// NopNotifier discards every report. It's the default when no
// -statusEmailTo is configured.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(subject, body string) error { return nil }
