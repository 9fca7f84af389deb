package security

import (
	"fmt"
	"strings"
)

// Validator проверяет текст T-SQL запроса перед выполнением.
//
// В safe mode (по умолчанию) разрешены только SELECT и WITH запросы:
// блокируются изменяющие операции, вызовы процедур, смена контекста базы
// через USE и управление транзакциями. Смена базы идет только через
// сессию, никогда через сырой запрос.
//
// В unsafe mode запросы проходят без проверки.
type Validator struct {
	safeMode bool
}

func NewValidator(safeMode bool) *Validator {
	return &Validator{safeMode: safeMode}
}

// Запрещенные в safe mode ключевые слова T-SQL.
var forbiddenKeywords = map[string]struct{}{
	// DML
	"INSERT": {}, "UPDATE": {}, "DELETE": {}, "TRUNCATE": {}, "MERGE": {},
	// DDL
	"DROP": {}, "CREATE": {}, "ALTER": {},
	// DCL
	"GRANT": {}, "REVOKE": {}, "DENY": {},
	// Выполнение кода и администрирование
	"EXEC": {}, "EXECUTE": {}, "KILL": {}, "SHUTDOWN": {},
	"RECONFIGURE": {}, "BACKUP": {}, "RESTORE": {}, "DBCC": {},
	// Контекст и транзакции
	"USE": {}, "BEGIN": {}, "COMMIT": {}, "ROLLBACK": {},
}

// Validate проверяет запрос на соответствие политике safe mode.
//
// Проверяется:
//   - запрос начинается с SELECT или WITH
//   - нет запрещенных ключевых слов (по токенам, SELECTED не ловится)
//   - нет вызовов системных процедур (sp_, xp_)
//   - одна команда, точка с запятой только в конце
//   - нет SQL комментариев
func (v *Validator) Validate(query string) error {
	if !v.safeMode {
		return nil
	}

	normalized := strings.ToUpper(strings.TrimSpace(query))

	if !strings.HasPrefix(normalized, "SELECT") && !strings.HasPrefix(normalized, "WITH") {
		return fmt.Errorf("only SELECT and WITH queries allowed in safe mode, got: %s",
			firstWord(normalized))
	}

	for _, token := range tokenize(stripLiterals(normalized)) {
		if _, bad := forbiddenKeywords[token]; bad {
			return fmt.Errorf("forbidden keyword '%s' found in safe mode", token)
		}
		if strings.HasPrefix(token, "SP_") || strings.HasPrefix(token, "XP_") {
			return fmt.Errorf("system procedure call '%s' not allowed in safe mode", token)
		}
	}

	if err := checkSingleStatement(query); err != nil {
		return err
	}
	return checkComments(query)
}

// IsSafeMode возвращает текущий режим валидатора.
func (v *Validator) IsSafeMode() bool {
	return v.safeMode
}

// stripLiterals вырезает содержимое строковых литералов '...', чтобы
// значение WHERE status = 'DELETE' не считалось ключевым словом.
func stripLiterals(query string) string {
	var b strings.Builder
	inLiteral := false
	for _, r := range query {
		if r == '\'' {
			inLiteral = !inLiteral
			continue
		}
		if !inLiteral {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// tokenize разбивает запрос на слова-идентификаторы. Разделитель - любой
// символ, не входящий в идентификатор, поэтому DELETE ловится и после
// перевода строки, а DELETED_AT остается одним токеном.
func tokenize(query string) []string {
	return strings.FieldsFunc(query, func(r rune) bool {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9', r == '_', r == '#', r == '$':
			return false
		}
		return true
	})
}

// checkSingleStatement запрещает пакеты из нескольких команд.
func checkSingleStatement(query string) error {
	count := strings.Count(query, ";")
	if count > 1 {
		return fmt.Errorf("multiple statements not allowed in safe mode")
	}
	if count == 1 && !strings.HasSuffix(strings.TrimSpace(query), ";") {
		return fmt.Errorf("semicolon allowed only at the end of query")
	}
	return nil
}

// checkComments запрещает SQL комментарии, в них можно спрятать что угодно.
func checkComments(query string) error {
	if strings.Contains(query, "--") {
		return fmt.Errorf("SQL comments (--) not allowed in safe mode")
	}
	if strings.Contains(query, "/*") || strings.Contains(query, "*/") {
		return fmt.Errorf("SQL comments (/* */) not allowed in safe mode")
	}
	return nil
}

func firstWord(query string) string {
	if parts := strings.Fields(query); len(parts) > 0 {
		return parts[0]
	}
	return "EMPTY"
}
