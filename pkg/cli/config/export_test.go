package config

// NewChatForTest creates a Chat config for testing purposes
func NewChatForTest(botToken string) *Chat {
	return &Chat{botToken: botToken}
}

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewNotionForTest creates a Notion config for testing purposes
func NewNotionForTest(token, reportsDB, interventionsDB string) *Notion {
	return &Notion{
		token:           token,
		reportsDB:       reportsDB,
		interventionsDB: interventionsDB,
	}
}

// NewStorageForTest creates a Storage config for testing purposes
func NewStorageForTest(bucket, prefix string) *Storage {
	return &Storage{
		bucket: bucket,
		prefix: prefix,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		databaseID: databaseID,
	}
}
