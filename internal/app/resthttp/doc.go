// Package resthttp реализует публичный HTTP API приёма STEP-файлов поверх локального диска:
//   - POST /upload — принимает multipart-поле file с расширением .step/.stp и сохраняет его как есть.
//   - GET /health — liveness-проба, всегда отвечает {"status":"ok"}.
//
// Все ответы проходят через CORS-политику, по умолчанию разрешающую любой Origin вместе с credentials.
package resthttp
