// Copyright Port Ops contributors
// SPDX-License-Identifier: Apache-2.0

// Package fake provides a scripted Prompter for wizard tests.
package fake

import (
	"fmt"

	"github.com/port-ops/portinfra/internal/prompt"
)

// Make sure that Prompter implements the real interface.
var _ prompt.Prompter = &Prompter{}

// Prompter answers prompts from pre scripted queues, recording every label
// it was asked so tests can assert the conversation flow.
type Prompter struct {
	InputAnswers     []string
	SecretAnswers    []string
	ConfirmAnswers   []bool
	SelectAnswers    []string
	MultiLineAnswers []string

	Asked []string
}

// Input implements prompt.Prompter.
func (p *Prompter) Input(label, _ string) (string, error) {
	p.Asked = append(p.Asked, label)
	return popAnswer(label, &p.InputAnswers)
}

// Secret implements prompt.Prompter.
func (p *Prompter) Secret(label string) (string, error) {
	p.Asked = append(p.Asked, label)
	return popAnswer(label, &p.SecretAnswers)
}

// Confirm implements prompt.Prompter.
func (p *Prompter) Confirm(label string, _ bool) (bool, error) {
	p.Asked = append(p.Asked, label)
	return popAnswer(label, &p.ConfirmAnswers)
}

// Select implements prompt.Prompter.
func (p *Prompter) Select(label string, _ []prompt.Option) (string, error) {
	p.Asked = append(p.Asked, label)
	return popAnswer(label, &p.SelectAnswers)
}

// MultiLine implements prompt.Prompter.
func (p *Prompter) MultiLine(label string) (string, error) {
	p.Asked = append(p.Asked, label)
	return popAnswer(label, &p.MultiLineAnswers)
}

func popAnswer[T any](label string, queue *[]T) (T, error) {
	var zero T
	if len(*queue) == 0 {
		return zero, fmt.Errorf("no scripted answer for prompt %q", label)
	}

	answer := (*queue)[0]
	*queue = (*queue)[1:]
	return answer, nil
}
