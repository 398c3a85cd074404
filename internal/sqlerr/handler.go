package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/deppfellow/venue-booking/internal/errs"
)

// ErrCode returns the Code of a database error, or Other.
func ErrCode(err error) Code {
	if sqlErr, ok := Classify(err); ok {
		return sqlErr.Code
	}
	return Other
}

// Classify normalizes a Postgres or SQLite driver error found in err's chain.
func Classify(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr, true
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr), true
	}

	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr), true
	}

	return nil, false
}

// ConvertPgError converts a pgconn error into an *Error.
//
// Postgres leaves the column empty for foreign key and CHECK violations;
// it is then recovered from the default constraint name.
func ConvertPgError(src *pgconn.PgError) *Error {
	out := &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}

	if out.ColumnName == "" {
		if table, column, ok := splitConstraintName(src.ConstraintName); ok {
			if out.TableName == "" {
				out.TableName = table
			}
			out.ColumnName = column
		}
	}

	return out
}

// ConvertSQLiteError converts a modernc sqlite error into an *Error.
//
// SQLite reports the offending table and column only inside the message,
// e.g. "NOT NULL constraint failed: venues.name", so they are parsed out.
func ConvertSQLiteError(src *msqlite.Error) *Error {
	out := &Error{
		Code:         mapSQLiteCode(src.Code()),
		Severity:     SeverityError,
		DatabaseCode: strconv.Itoa(src.Code()),
		Message:      src.Error(),
		driverErr:    src,
	}

	detail := constraintDetail(src.Error())
	switch out.Code {
	case NotNullViolation, UniqueViolation:
		// "table.column[, table.column]"
		first := strings.TrimSpace(strings.Split(detail, ",")[0])
		if table, column, ok := strings.Cut(first, "."); ok {
			out.TableName = table
			out.ColumnName = column
		}
	case CheckViolation:
		out.ConstraintName = detail
		if table, column, ok := splitConstraintName(detail); ok {
			out.TableName = table
			out.ColumnName = column
		}
	}

	return out
}

func mapSQLiteCode(code int) Code {
	switch code {
	case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
		return Busy
	default:
		return Other
	}
}

func constraintDetail(message string) string {
	const marker = "constraint failed: "
	idx := strings.LastIndex(message, marker)
	if idx == -1 {
		return ""
	}
	detail := message[idx+len(marker):]
	if paren := strings.LastIndex(detail, " ("); paren != -1 {
		detail = detail[:paren]
	}
	return strings.TrimSpace(detail)
}

// constraintNamePattern matches the Postgres default constraint names
// "<table>_<column>_check" and "<table>_<column>_fkey". The SQLite schema
// names its CHECK constraints the same way.
var constraintNamePattern = regexp.MustCompile(`^([a-z]+)_([a-z_]+)_(?:check|fkey)$`)

func splitConstraintName(name string) (string, string, bool) {
	matches := constraintNamePattern.FindStringSubmatch(name)
	if len(matches) != 3 {
		return "", "", false
	}
	return matches[1], matches[2], true
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case StringTooLong:
		return "One or more values exceed the maximum length"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers a foreign-key column ("venue_id" -> "Venue") and
// falls back to the singular table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText turns "facebook_link" into "Facebook Link".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// ToDomain converts a storage error raised while writing or reading entity
// into the domain taxonomy. Domain errors pass through unchanged.
//
//   - NOT NULL, CHECK, UNIQUE, value too long -> validation
//   - FOREIGN KEY -> referential
//   - everything else -> storage
func ToDomain(err error, entity string) error {
	if err == nil {
		return nil
	}

	if _, ok := errs.AsError(err); ok {
		return err
	}

	sqlErr, ok := Classify(err)
	if !ok {
		return errs.Storage(fmt.Sprintf("%s query failed", entity), err)
	}

	message := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case NotNullViolation, CheckViolation, UniqueViolation, StringTooLong:
		var fields []errs.FieldError
		if sqlErr.ColumnName != "" {
			fields = append(fields, errs.FieldError{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: fieldMessage(sqlErr.Code),
			})
		}
		domainErr := errs.Invalid(entity, message, fields...)
		domainErr.Err = sqlErr
		return domainErr

	case ForeignKeyViolation:
		referenced := strings.ToLower(getEntityName("", sqlErr.ColumnName))
		if referenced == "record" || referenced == "" {
			referenced = entity
		}
		return &errs.Error{
			Kind:    errs.KindReferential,
			Entity:  referenced,
			Message: message,
			Err:     sqlErr,
		}

	default:
		return errs.Storage(fmt.Sprintf("%s query failed", entity), sqlErr)
	}
}

func fieldMessage(code Code) string {
	switch code {
	case NotNullViolation:
		return "is required"
	case UniqueViolation:
		return "already exists"
	case StringTooLong:
		return "is too long"
	default:
		return "is invalid"
	}
}

// HandleError converts any error that reached the HTTP boundary into an
// *errs.HTTPError. Driver errors are expected to have gone through ToDomain
// in the repositories; anything still raw is reported as a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if domainErr, ok := errs.AsError(err); ok {
		return errs.ToHTTPError(domainErr)
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
