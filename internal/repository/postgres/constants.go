package postgres

import "time"

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errClientNotFound   = "client not found"
	errDocumentNotFound = "document not found"
	errRequestNotFound  = "build request not found"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedCreateClientFmt = "failed to create client: %w"
	errFailedGetClientFmt    = "failed to get client: %w"
	errFailedListClientsFmt  = "failed to list clients: %w"
	errFailedScanClientFmt   = "failed to scan client: %w"
	errIterateClientsFmt     = "error iterating clients: %w"
	errFailedUpdateClientFmt = "failed to update client: %w"
	errFailedDeleteClientFmt = "failed to delete client: %w"

	errFailedGetDocumentFmt    = "failed to get document: %w"
	errFailedPutDocumentFmt    = "failed to put document: %w"
	errFailedDeleteDocumentFmt = "failed to delete document: %w"
	errFailedEncodeDocumentFmt = "failed to encode document: %w"
	errFailedDecodeDocumentFmt = "failed to decode document: %w"

	errFailedCreateRequestFmt = "failed to create build request: %w"
	errFailedGetRequestFmt    = "failed to get build request: %w"
	errFailedListRequestsFmt  = "failed to list build requests: %w"
	errFailedScanRequestFmt   = "failed to scan build request: %w"
	errIterateRequestsFmt     = "error iterating build requests: %w"
	errFailedReviewRequestFmt = "failed to review build request: %w"
)
