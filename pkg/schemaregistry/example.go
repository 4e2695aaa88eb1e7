package schemaregistry

// ExampleSchema is the record both services register at startup.
const ExampleSchema = `{
	"type": "record",
	"name": "Example",
	"namespace": "examples",
	"fields": [{ "type": "string", "name": "test" }]
}`

// ExampleSubject is the default subject ExampleSchema registers under.
const ExampleSubject = "examples.Example"
