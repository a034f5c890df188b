package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenKind_Categories(t *testing.T) {
	tests := []struct {
		kind       TokenKind
		identifier bool
		literal    bool
		storage    bool
		keyword    bool
	}{
		{kind: KindError},
		{kind: BracketOpen},
		{kind: IdentVariable, identifier: true},
		{kind: IdentParameter, identifier: true},
		{kind: LiteralInteger, literal: true},
		{kind: LiteralBool, literal: true},
		{kind: StoragePointer, storage: true},
		{kind: StorageBool, storage: true},
		{kind: KeywordDef, keyword: true},
		{kind: KeywordSign, keyword: true},
		{kind: OperatorNothing},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.identifier, tt.kind.IsIdentifier())
			assert.Equal(t, tt.literal, tt.kind.IsLiteral())
			assert.Equal(t, tt.storage, tt.kind.IsStorage())
			assert.Equal(t, tt.keyword, tt.kind.IsKeyword())
		})
	}
}
