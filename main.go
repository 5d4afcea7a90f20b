package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"code.cloudfoundry.org/lager/v3"

	"github.com/sqladmin-community/sqladmin/batch"
	"github.com/sqladmin-community/sqladmin/provision"
	"github.com/sqladmin-community/sqladmin/result"
	"github.com/sqladmin-community/sqladmin/schema"
	"github.com/sqladmin-community/sqladmin/sqlengine"
	"github.com/sqladmin-community/sqladmin/utils"
)

var (
	engineType       string
	setup            bool
	schemaFile       string
	exampleTables    string
	generateExample  bool
	query            string
	listTables       bool
	describeTable    string
	outputFormat     string
	dbName           string
	dbUser           string
	dbPassword       string
	dbHost           string
	dbPort           int64
	generatePassword bool
	logLevel         string

	logLevels = map[string]lager.LogLevel{
		"DEBUG": lager.DEBUG,
		"INFO":  lager.INFO,
		"ERROR": lager.ERROR,
		"FATAL": lager.FATAL,
	}
)

func init() {
	flag.StringVar(&engineType, "type", "postgres", "Database type (postgres or mysql)")
	flag.BoolVar(&setup, "setup", false, "Install, start and provision the database service")
	flag.StringVar(&schemaFile, "schema", "", "Path to SQL schema file")
	flag.StringVar(&exampleTables, "example", "", "Create example tables (comma-separated: users,posts,comments)")
	flag.BoolVar(&generateExample, "generate-example", false, "Print example schema SQL to stdout")
	flag.StringVar(&query, "query", "", "SQL query to execute")
	flag.BoolVar(&listTables, "list-tables", false, "List all tables in the database")
	flag.StringVar(&describeTable, "describe", "", "Describe table structure")
	flag.StringVar(&outputFormat, "format", "table", "Output format (table or json)")
	flag.StringVar(&dbName, "name", "", "Database name (overrides DB_NAME env var)")
	flag.StringVar(&dbUser, "user", "", "Database user (overrides DB_USER env var)")
	flag.StringVar(&dbPassword, "password", "", "Database password (overrides DB_PASSWORD env var)")
	flag.StringVar(&dbHost, "host", "", "Database host (overrides DB_HOST env var)")
	flag.Int64Var(&dbPort, "port", 0, "Database port (overrides DB_PORT env var)")
	flag.BoolVar(&generatePassword, "generate-password", false, "Provision with a generated password instead of DB_PASSWORD")
	flag.StringVar(&logLevel, "logLevel", "INFO", "Log level (DEBUG, INFO, ERROR or FATAL)")
}

func buildLogger(logLevel string) lager.Logger {
	laggerLogLevel, ok := logLevels[strings.ToUpper(logLevel)]
	if !ok {
		log.Fatal("Invalid log level: ", logLevel)
	}

	logger := lager.NewLogger("sqladmin")
	logger.RegisterSink(lager.NewWriterSink(os.Stdout, laggerLogLevel))

	return logger
}

func buildConfig() sqlengine.Config {
	config := sqlengine.NewConfig(engineType)
	if dbName != "" {
		config.Name = dbName
	}
	if dbUser != "" {
		config.Username = dbUser
	}
	if dbPassword != "" {
		config.Password = dbPassword
	}
	if dbHost != "" {
		config.Host = dbHost
	}
	if dbPort != 0 {
		config.Port = dbPort
	}
	if generatePassword {
		config.Password = utils.RandomAlphaNum(16)
	}

	return config
}

func main() {
	flag.Parse()

	if generateExample {
		out, err := schema.GenerateExample(engineType)
		if err != nil {
			log.Fatalf("Invalid configuration: %s", err)
		}
		fmt.Print(out)
		return
	}

	logger := buildLogger(logLevel)

	config := buildConfig()
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}

	format, err := result.ParseFormat(outputFormat)
	if err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}

	sqlProvider := sqlengine.NewProviderService(logger)

	if setup {
		if generatePassword {
			logger.Info("generated-password", lager.Data{"password": config.Password})
		}

		provisioner := provision.NewProvisioner(provision.NewExecRunner(), sqlProvider, logger)
		if err := provisioner.Provision(config); err != nil {
			log.Fatalf("Error provisioning database: %s", err)
		}
		return
	}

	engine, err := sqlProvider.GetSQLEngine(config.Engine)
	if err != nil {
		log.Fatalf("Error selecting SQL engine: %s", err)
	}

	if err := engine.Open(config.Host, config.Port, config.Name, config.Username, config.Password); err != nil {
		log.Fatalf("Error connecting to database: %s", err)
	}
	defer engine.Close()

	executor := batch.NewExecutor(logger)

	switch {
	case schemaFile != "":
		sqlText, err := schema.Load(schemaFile)
		if err != nil {
			log.Fatalf("%s", err)
		}
		logger.Info("create-schema", lager.Data{"file": schemaFile})
		runBatch(engine, executor, sqlText, logger)

	case exampleTables != "":
		// One batch per example table; a failing table does not stop
		// the remaining ones.
		for _, name := range strings.Split(exampleTables, ",") {
			name = strings.TrimSpace(name)
			sqlText, err := schema.Example(name, config.Engine)
			if err != nil {
				logger.Info("unknown-example", lager.Data{"table": name})
				continue
			}
			logger.Info("create-example", lager.Data{"table": name})
			runBatch(engine, executor, sqlText, logger)
		}

	case listTables:
		runListTables(engine, config, logger)

	case describeTable != "":
		runDescribe(engine, format, logger)

	case query != "":
		runQuery(engine, format, logger)

	default:
		flag.Usage()
		os.Exit(1)
	}
}

func runBatch(engine sqlengine.SQLEngine, executor *batch.Executor, sqlText string, logger lager.Logger) {
	conn, err := engine.Begin()
	if err != nil {
		log.Fatalf("Error starting transaction: %s", err)
	}

	outcome := executor.Execute(conn, sqlText)
	if outcome.Success() {
		logger.Info("schema-created", lager.Data{"statements": outcome.Executed})
	} else {
		logger.Error("schema-failed", outcome.Err, lager.Data{"index": outcome.Err.Index})
	}
}

func runListTables(engine sqlengine.SQLEngine, config sqlengine.Config, logger lager.Logger) {
	tables, err := engine.ListTables()
	if err != nil {
		log.Fatalf("Error listing tables: %s", err)
	}

	if len(tables) == 0 {
		logger.Info("no-tables", lager.Data{"name": config.Name})
		return
	}

	fmt.Printf("Tables in database '%s':\n", config.Name)
	for _, table := range tables {
		fmt.Println("  - " + table)
	}
}

func runDescribe(engine sqlengine.SQLEngine, format result.Format, logger lager.Logger) {
	set, err := engine.DescribeTable(describeTable)
	if err != nil {
		log.Fatalf("Error describing table: %s", err)
	}

	if set.Empty() {
		logger.Info("table-not-found", lager.Data{"table": describeTable})
		if format == result.FormatJSON {
			printRendered(set, format)
		}
		return
	}

	printRendered(set, format)
}

func runQuery(engine sqlengine.SQLEngine, format result.Format, logger lager.Logger) {
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") {
		if err := engine.Exec(query); err != nil {
			logger.Error("query-failed", err)
			return
		}
		logger.Info("query-executed")
		return
	}

	set, err := engine.Query(query)
	if err != nil {
		logger.Error("query-failed", err)
		return
	}

	if set.Empty() {
		logger.Info("no-results")
		if format == result.FormatJSON {
			printRendered(set, format)
		}
		return
	}

	printRendered(set, format)
}

func printRendered(set *result.Set, format result.Format) {
	out := result.Render(set, format)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	fmt.Print(out)
}
