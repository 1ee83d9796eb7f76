//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

// Package openai converts capability declarations to the OpenAI
// tool-calling wire format. It carries no network client: the agent loop
// that reads schemas and proposes calls stays outside the core.
package openai

import (
	"encoding/json"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	"github.com/agentsea/toolfuse/log"
	"github.com/agentsea/toolfuse/tool"
)

// ConvertDeclarations converts capability declarations to OpenAI chat
// completion tool parameters, preserving order. Declarations whose schemas
// fail to convert are skipped with a logged error.
func ConvertDeclarations(decls []*tool.Declaration) []openai.ChatCompletionToolParam {
	result := make([]openai.ChatCompletionToolParam, 0, len(decls))
	for _, decl := range decls {
		// Round-trip the parameters schema through JSON to map onto
		// OpenAI's expected format.
		schemaBytes, err := json.Marshal(decl.InputSchema)
		if err != nil {
			log.Errorf("openai: failed to marshal schema for %s: %v", decl.Name, err)
			continue
		}
		var parameters shared.FunctionParameters
		if err := json.Unmarshal(schemaBytes, &parameters); err != nil {
			log.Errorf("openai: failed to unmarshal schema for %s: %v", decl.Name, err)
			continue
		}
		result = append(result, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        decl.Name,
				Description: openai.String(decl.Description),
				Parameters:  parameters,
			},
		})
	}
	return result
}
