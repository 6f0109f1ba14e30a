// Package sql embeds the schema migrations and the queries the ingest
// pipeline runs against it.
package sql

import (
	"embed"
)

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_upload.sql
var RegisterUpload string

//go:embed queries/update_upload_status.sql
var UpdateUploadStatus string

//go:embed queries/finalize_upload.sql
var FinalizeUpload string

//go:embed queries/delete_upload_rows.sql
var DeleteUploadRows string

//go:embed queries/insert_audit.sql
var InsertAudit string

//go:embed queries/get_audit.sql
var GetAudit string
