// Package middleware groups the fiber middleware mounted in front of the
// destination routes.
//
//   - rayid: keeps the caller's X-Ray-ID or generates one, stores it in the
//     fiber locals for logger.WithRayID and echoes it on the response.
//   - auth: requires X-API-Key to equal the configured key. An empty key
//     leaves the API open. Public routes (/metrics, /swagger) are mounted
//     before it, or skipped with Config.Next.
package middleware
