// Package sqlstore реализует LedgerStore поверх database/sql и bun.
// Запросы пишутся с плейсхолдерами `?`, значения подставляет форматтер bun
// по диалекту СУБД; остальные различия сведены в Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"strings"

	"github.com/uptrace/bun/schema"
)

// Dialect описывает особенности конкретной СУБД.
type Dialect struct {
	Name string
	// Bun форматирует запросы и значения аргументов.
	Bun schema.Dialect
	// LockSuffix дописывается к SELECT, который должен заблокировать строку.
	LockSuffix string
	// UniqueViolation распознаёт нарушение уникального ограничения.
	UniqueViolation func(err error) bool
	// LockMigrations берёт межпроцессную блокировку на время миграций. Может быть nil.
	LockMigrations func(ctx context.Context, conn *sql.Conn) (release func(), err error)
}

// Format подставляет аргументы в запрос так же, как это делает bun при выполнении.
func (d Dialect) Format(query string, args ...any) string {
	return schema.NewFormatter(d.Bun).FormatQuery(query, args...)
}

func (d Dialect) isUniqueViolation(err error) bool {
	return err != nil && d.UniqueViolation != nil && d.UniqueViolation(err)
}

func (d Dialect) forUpdate(query string) string {
	if d.LockSuffix == "" {
		return query
	}
	return query + " " + d.LockSuffix
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
