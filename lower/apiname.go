//  Copyright (c) 2024 The pdgraph Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lower

import (
	"strings"

	"github.com/pdgraph/pdgraph/pe"
	"github.com/pdgraph/pdgraph/sourceast"
)

// resolveAPIName computes the ApiName of a MethodInvocation expression: the fully qualified form
// "<QualifiedType>.<methodName>()" when ctx.resolver can bind the qualifier's static type, else
// the textual fallback "<qualifierText>.<methodName>()". A receiverless call (no qualifier, e.g.
// an implicit this-call) falls back to "<methodName>()".
func (ctx *Context) resolveAPIName(n sourceast.Node, expr *pe.Expression) string {
	methodName := ""
	if name := n.Child(sourceast.RoleName); name != nil {
		methodName = name.Text()
	}

	qualifierNode := n.Child(sourceast.RoleQualifier)
	if qualifierNode == nil {
		return methodName + "()"
	}

	if ctx.resolver != nil {
		if qualifiedType, ok := ctx.resolver.ResolveQualifierType(qualifierNode); ok {
			return qualifiedType + "." + methodName + "()"
		}
	}

	qualifierText := qualifierNode.Text()
	if expr.Qualifier != nil {
		qualifierText = expr.Qualifier.Text
	}
	return strings.TrimSpace(qualifierText) + "." + methodName + "()"
}
