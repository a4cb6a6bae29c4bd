// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import "fmt"

// FatalError stops a run immediately. Kind is one of the Fatal*
// constants; PC and Line locate the offending instruction.
type FatalError struct {
	Kind string
	PC   int
	Line int
}

func (err *FatalError) Error() string {
	return fmt.Sprintf("fatal:%s at pc=%d (line %d)", err.Kind, err.PC, err.Line)
}

// Reason renders the termination-reason string for Report.Reason.
func (err *FatalError) Reason() string {
	return "fatal:" + err.Kind
}
