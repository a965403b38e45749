package knowledge

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

type blockField int

const (
	fieldNone blockField = iota
	fieldID
	fieldQuestion
	fieldVariation
	fieldKeywords
	fieldCategory
	fieldAnswer
)

var blockPrefixes = map[string]blockField{
	"id":        fieldID,
	"q":         fieldQuestion,
	"question":  fieldQuestion,
	"v":         fieldVariation,
	"variation": fieldVariation,
	"k":         fieldKeywords,
	"keywords":  fieldKeywords,
	"c":         fieldCategory,
	"category":  fieldCategory,
	"a":         fieldAnswer,
	"answer":    fieldAnswer,
}

// parseBlocks reads the line-oriented format:
//
//	# comment
//	ID: topup
//	Q: Как пополнить баланс?
//	V: как закинуть деньги
//	K: баланс, пополнить
//	C: payment
//	A: Откройте Профиль > Пополнить.
//	   Unprefixed lines continue the answer.
//	---
//
// Records are separated by a blank line or "---".
func parseBlocks(data []byte) ([]draft, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var (
		drafts     []draft
		current    draft
		started    bool
		last       blockField
		recognized bool
	)
	flush := func() {
		if started {
			drafts = append(drafts, current)
		}
		current = draft{position: len(drafts) + 1}
		started, last = false, fieldNone
	}
	current.position = 1

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || line == "---":
			flush()
			continue
		case strings.HasPrefix(line, "#"):
			continue
		}

		field, value := splitPrefix(line)
		if field == fieldNone {
			if last == fieldAnswer {
				current.answer += "\n" + line
				continue
			}
			started = true
			if current.err == "" {
				current.err = fmt.Sprintf("unrecognized line %d", lineNo)
			}
			continue
		}

		started, recognized, last = true, true, field
		switch field {
		case fieldID:
			current.id = value
		case fieldQuestion:
			current.question = value
		case fieldVariation:
			current.variations = append(current.variations, value)
		case fieldKeywords:
			current.keywords = append(current.keywords, value)
		case fieldCategory:
			current.category = value
		case fieldAnswer:
			current.answer = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	flush()

	if !recognized {
		return nil, fmt.Errorf("%w: no prefixed lines found", ErrUnknownFormat)
	}
	return drafts, nil
}

func splitPrefix(line string) (blockField, string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return fieldNone, ""
	}
	field, known := blockPrefixes[strings.ToLower(strings.TrimSpace(key))]
	if !known {
		return fieldNone, ""
	}
	return field, strings.TrimSpace(value)
}
