// Package todo defines tasks and categories and validates their stored form.
//
// Tasks and categories are stored as two independent JSON arrays:
//
//	[
//	  {
//	    "id": "0b6c3d0e-6f0a-4b4e-9c43-3a1d9f1f7c2a",
//	    "title": "Renew passport",
//	    "description": "Photos first",
//	    "completed": false,
//	    "category": "1",
//	    "due_date": "2026-10-20",
//	    "note": "office closes at 4",
//	    "created_at": "2026-10-16T09:00:00Z",
//	    "updated_at": "2026-10-16T09:00:00Z"
//	  }
//	]
//
//	[
//	  {"id": "1", "name": "High Priority", "color": "#EF4444"}
//	]
//
// # Validation
//
// Stored data is checked in two modes:
//
// 1. JSON Schema validation against the embedded draft-2020-12 schemas.
//
// 2. Minimal fallback validation when the schema cannot be compiled:
//   - Task id and title present, due date in YYYY-MM-DD form
//   - Category id and name present, color in #rrggbb form
//
// # Copy Semantics
//
// Task and Category hold only value fields, so assigning one copies it
// completely. Clone and CloneTasks exist so that callers which must not
// share state (the undo history in particular) say so explicitly.
package todo
