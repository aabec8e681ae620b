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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesReferenceDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.True(t, cfg.Depgraph.ControlDependence.Enabled)
	require.True(t, cfg.Depgraph.DataDependence.Enabled)
	require.True(t, cfg.Depgraph.ExecutionDependence)
	require.False(t, cfg.Depgraph.DefUse.TreatNonLocalAsField)
	require.True(t, cfg.Depgraph.DefUse.TreatMayUseAsUse)
	require.Equal(t, DefaultASTCacheCapacity, cfg.ASTCacheCapacity)
}

func TestLoadConfigOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `
astCacheCapacity: 128
depgraph:
  defUse:
    treatNonLocalAsField: true
    treatFieldExcludeUppercase: true
  controlDependence:
    fromEntryToParameters: true
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 128, cfg.ASTCacheCapacity)
	require.True(t, cfg.Depgraph.DefUse.TreatNonLocalAsField)
	require.True(t, cfg.Depgraph.DefUse.TreatFieldExcludeUppercase)
	require.True(t, cfg.Depgraph.ControlDependence.FromEntryToParameters)

	// Fields the YAML omits keep their defaults.
	require.True(t, cfg.Depgraph.ControlDependence.Enabled)
	require.True(t, cfg.Depgraph.ExecutionDependence)
	require.NotEmpty(t, cfg.Depgraph.DefUse.Classification.DefPrefixes)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
