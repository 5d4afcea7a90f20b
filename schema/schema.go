// Package schema holds the built-in example table definitions and helpers
// for loading schema files from disk.
package schema

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Examples maps an example table name to its CREATE statements per engine.
var Examples = map[string]map[string]string{
	"users": {
		"postgres": `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(50) UNIQUE NOT NULL,
    email VARCHAR(100) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    first_name VARCHAR(50),
    last_name VARCHAR(50),
    is_active BOOLEAN DEFAULT true,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX idx_users_email ON users(email);
CREATE INDEX idx_users_username ON users(username);
`,
		"mysql": `
CREATE TABLE IF NOT EXISTS users (
    id INT AUTO_INCREMENT PRIMARY KEY,
    username VARCHAR(50) UNIQUE NOT NULL,
    email VARCHAR(100) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    first_name VARCHAR(50),
    last_name VARCHAR(50),
    is_active BOOLEAN DEFAULT true,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    INDEX idx_users_email (email),
    INDEX idx_users_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	},
	"posts": {
		"postgres": `
CREATE TABLE IF NOT EXISTS posts (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL,
    title VARCHAR(200) NOT NULL,
    content TEXT,
    status VARCHAR(20) DEFAULT 'draft',
    published_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX idx_posts_user_id ON posts(user_id);
CREATE INDEX idx_posts_status ON posts(status);
CREATE INDEX idx_posts_published_at ON posts(published_at);
`,
		"mysql": `
CREATE TABLE IF NOT EXISTS posts (
    id INT AUTO_INCREMENT PRIMARY KEY,
    user_id INT NOT NULL,
    title VARCHAR(200) NOT NULL,
    content TEXT,
    status VARCHAR(20) DEFAULT 'draft',
    published_at TIMESTAMP NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    INDEX idx_posts_user_id (user_id),
    INDEX idx_posts_status (status),
    INDEX idx_posts_published_at (published_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	},
	"comments": {
		"postgres": `
CREATE TABLE IF NOT EXISTS comments (
    id SERIAL PRIMARY KEY,
    post_id INTEGER NOT NULL,
    user_id INTEGER NOT NULL,
    content TEXT NOT NULL,
    parent_id INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY (parent_id) REFERENCES comments(id) ON DELETE CASCADE
);

CREATE INDEX idx_comments_post_id ON comments(post_id);
CREATE INDEX idx_comments_user_id ON comments(user_id);
CREATE INDEX idx_comments_parent_id ON comments(parent_id);
`,
		"mysql": `
CREATE TABLE IF NOT EXISTS comments (
    id INT AUTO_INCREMENT PRIMARY KEY,
    post_id INT NOT NULL,
    user_id INT NOT NULL,
    content TEXT NOT NULL,
    parent_id INT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    FOREIGN KEY (parent_id) REFERENCES comments(id) ON DELETE CASCADE,
    INDEX idx_comments_post_id (post_id),
    INDEX idx_comments_user_id (user_id),
    INDEX idx_comments_parent_id (parent_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
	},
}

// exampleOrder lists the example tables with referenced tables first:
// posts carries a foreign key to users, comments to both. A dump emitted
// in this order applies cleanly to a fresh database.
var exampleOrder = []string{"users", "posts", "comments"}

// Example returns the DDL for one example table and engine.
func Example(name string, engine string) (string, error) {
	engines, ok := Examples[name]
	if !ok {
		return "", fmt.Errorf("Unknown example table: %s", name)
	}

	canonical, ok := canonicalEngine(engine)
	if !ok {
		return "", fmt.Errorf("SQL Engine '%s' not supported", engine)
	}

	return engines[canonical], nil
}

// Names returns the example table names in dependency order.
func Names() []string {
	return append([]string(nil), exampleOrder...)
}

// GenerateExample produces a commented SQL dump of every example table
// for the given engine, suitable for redirecting into a schema file.
func GenerateExample(engine string) (string, error) {
	canonical, ok := canonicalEngine(engine)
	if !ok {
		return "", fmt.Errorf("SQL Engine '%s' not supported", engine)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "-- Example Schema for %s\n", strings.ToUpper(engine))
	fmt.Fprintf(&b, "-- Generated on %s\n\n", time.Now().Format(time.UnixDate))

	for _, name := range Names() {
		fmt.Fprintf(&b, "-- Table: %s\n", name)
		b.WriteString(Examples[name][canonical])
		b.WriteString("\n")
	}

	return b.String(), nil
}

// Load reads a schema file from disk.
func Load(path string) (string, error) {
	sqlText, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("Schema file not found: %s", path)
	}

	return string(sqlText), nil
}

func canonicalEngine(engine string) (string, bool) {
	switch strings.ToLower(engine) {
	case "mysql", "mariadb":
		return "mysql", true
	case "postgres", "postgresql":
		return "postgres", true
	}

	return "", false
}
