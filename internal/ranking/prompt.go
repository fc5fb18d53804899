package ranking

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	"golang.org/x/text/language"
)

const promptPT = `Atue como um especialista em tecnologia e IA cinematográfica.
Pesquise na internet e liste as 5 melhores ferramentas de IA para criação de vídeos cinematográficos que tenham as melhores opções gratuitas ou planos sem limitações severas (por exemplo Luma Dream Machine, Kling AI, Runway, Pika).

Responda EXCLUSIVAMENTE com um objeto JSON que siga este JSON Schema:
%s

Ordene pelo campo "rank" começando em 1. Garanta que as informações sejam precisas e atuais.`

const promptEN = `Act as an expert in technology and cinematic AI.
Search the web and list the 5 best AI tools for creating cinematic videos that have the best free options or plans without severe limitations (for example Luma Dream Machine, Kling AI, Runway, Pika).

Respond EXCLUSIVELY with a JSON object that follows this JSON Schema:
%s

Order by the "rank" field starting at 1. Make sure the information is accurate and current.`

var (
	schemaOnce sync.Once
	schemaJSON []byte
	schemaErr  error
)

// ResponseSchema returns the JSON Schema of Response, the object the model is
// asked to answer with.
func ResponseSchema() ([]byte, error) {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{
			DoNotReference:            true,
			ExpandedStruct:            true,
			AllowAdditionalProperties: true,
		}
		schemaJSON, schemaErr = json.MarshalIndent(reflector.Reflect(&Response{}), "", "  ")
	})
	return schemaJSON, schemaErr
}

// BuildPrompt returns the fixed ranking prompt for tag. Anything that is not
// English gets the Portuguese prompt.
func BuildPrompt(tag language.Tag) (string, error) {
	schema, err := ResponseSchema()
	if err != nil {
		return "", fmt.Errorf("reflect response schema: %w", err)
	}
	tmpl := promptPT
	english, _ := language.English.Base()
	if base, _ := tag.Base(); base == english {
		tmpl = promptEN
	}
	return fmt.Sprintf(tmpl, schema), nil
}
