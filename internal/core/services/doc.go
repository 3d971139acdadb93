// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// DocumentService stores and groups career documents. RecommendService is
// the pipeline driver: it loads résumés, runs the retrieval stages and
// persists a snapshot, and it drives cover letter tailoring.
// SettingsService maps the flat configuration keys onto AppSettings.
package services
