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

package tinyvm

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyvm/tinyvm/pkg/isa"
	"github.com/tinyvm/tinyvm/pkg/machine"
)

//go:embed testdata/*.asm
var fixtures embed.FS

func load(t *testing.T, name string) string {
	data, err := fixtures.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestEuler1(t *testing.T) {
	img, errs := Translate(load(t, "euler1.asm"))
	require.Empty(t, errs)

	report, err := Run(img, PortSchedule{}, 100000)
	require.NoError(t, err)

	assert.Equal(t, machine.ReasonHalt, report.Reason)
	assert.Equal(t, []byte{0xd0, 0x8e, 0x03, 0x00}, report.Output[3])
}

func TestHelloWorld(t *testing.T) {
	img, errs := Translate(load(t, "hello_world.asm"))
	require.Empty(t, errs)

	report, err := Run(img, PortSchedule{}, 10000)
	require.NoError(t, err)

	assert.Equal(t, machine.ReasonHalt, report.Reason)
	assert.Equal(t, "Hello, world!", string(report.Output[3]))
}

func TestNamePrompt(t *testing.T) {
	img, errs := Translate(load(t, "name_prompt.asm"))
	require.Empty(t, errs)

	ports := PortSchedule{
		13: {
			{Tick: 0, Value: 'A'},
			{Tick: 0, Value: 'd'},
			{Tick: 0, Value: 'a'},
			{Tick: 0, Value: '\n'},
		},
	}

	report, err := Run(img, ports, 10000)
	require.NoError(t, err)

	assert.Equal(t, machine.ReasonHalt, report.Reason)
	assert.Equal(t, "What is your name?Hello, Ada!", string(report.Output[3]))
}

func TestInterruptSmoke(t *testing.T) {
	img, errs := Translate(load(t, "interrupt_smoke.asm"))
	require.Empty(t, errs)

	ports := PortSchedule{
		1: {
			{Tick: 10, Value: 'A'},
			{Tick: 20, Value: 'B'},
			{Tick: 30, Value: 'C'},
		},
	}

	report, err := Run(img, ports, 500)
	require.NoError(t, err)

	assert.Equal(t, "ABC", string(report.Output[3]))
	assert.Equal(t, 3, report.FiCount)
}

func TestDivisionByZero(t *testing.T) {
	img, errs := Translate(load(t, "div_by_zero.asm"))
	require.Empty(t, errs)

	report, err := Run(img, PortSchedule{}, 100)
	require.NoError(t, err)

	assert.Equal(t, "fatal:"+machine.FatalDivByZero, report.Reason)
}

func TestBudgetExhaustion(t *testing.T) {
	img, errs := Translate(load(t, "budget_exhaustion.asm"))
	require.Empty(t, errs)

	report, err := Run(img, PortSchedule{}, 1000)
	require.NoError(t, err)

	assert.Equal(t, machine.ReasonTicksExhausted, report.Reason)
	assert.Equal(t, 1000, report.Ticks)
	assert.EqualValues(t, isa.StartByte, report.Registers.PC)
}
