// Package bemcli integrates with the Backup Exec management shell (BEMCLI):
// it renders catalog-search scripts and runs them through PowerShell.
package bemcli

import (
	"fmt"
	"strings"

	"becat/internal/catalog"
)

// Builder renders a search request and its attempt plan into a PowerShell
// script. The script imports BEMCLI, collects environment diagnostics,
// executes every planned attempt with per-attempt error capture, and prints
// one {diagnostics, results} JSON document to stdout.
type Builder struct {
	// ModulePath is the explicit BEMCLI install location tried first
	ModulePath string
	// LookbackYears bounds FromBackupTime on catalog queries
	LookbackYears int
}

// NewBuilder creates a script builder
func NewBuilder(modulePath string, lookbackYears int) *Builder {
	if lookbackYears <= 0 {
		lookbackYears = 20
	}
	return &Builder{
		ModulePath:    modulePath,
		LookbackYears: lookbackYears,
	}
}

// escape prepares a value for insertion into a single-quoted PowerShell
// string: a single quote escapes by doubling it.
func escape(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

// psBool renders a Go bool as a PowerShell literal
func psBool(b bool) string {
	if b {
		return "$true"
	}
	return "$false"
}

// psArray renders a string slice as a PowerShell array literal
func psArray(items []string) string {
	if len(items) == 0 {
		return "@()"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + escape(item) + "'"
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

// Build implements catalog.ScriptBuilder. The attempt loop is unrolled from
// the plan so the Go side, not the script, decides what is searched and in
// what order.
func (b *Builder) Build(req catalog.SearchRequest, variants []string, plan []catalog.PlannedAttempt) string {
	lines := []string{
		"$ErrorActionPreference = 'Stop'",
		"$ProgressPreference = 'SilentlyContinue'",
		fmt.Sprintf("$modulePath = '%s'", escape(b.ModulePath)),
		"$diag = [ordered]@{}",
		"$diag.PSVersion = $PSVersionTable.PSVersion.ToString()",
		"$diag.PSEdition = $PSVersionTable.PSEdition",
		"$diag.MachineName = $env:COMPUTERNAME",
	}

	lines = append(lines, b.moduleImportLines()...)

	lines = append(lines,
		fmt.Sprintf("$queryPath = '%s'", escape(req.Path)),
		fmt.Sprintf("$agentName = '%s'", escape(req.AgentName)),
		fmt.Sprintf("$recurse = %s", psBool(req.Recurse)),
		fmt.Sprintf("$pathIsDir = %s", psBool(req.PathIsDirectory)),
		"$diag.queryPath = $queryPath",
		"$diag.agentRequested = $agentName",
		"$diag.recurse = $recurse",
		"$diag.pathIsDirectory = $pathIsDir",
		"$diag.identity = [System.Security.Principal.WindowsIdentity]::GetCurrent().Name",
		"$diag.hasSearchBECatalog = [bool](Get-Command Search-BECatalog -ErrorAction SilentlyContinue)",
		fmt.Sprintf("$pathsToTry = %s", psArray(variants)),
		"$diag.pathsToTry = $pathsToTry",
		// Environment validation: agent roster and catalog sample counts
		"try { $diag.agentsAvailable = (Get-BEAgentServer | Select-Object -ExpandProperty Name) } catch { $diag.agentsAvailable = @() }",
		"try { $diag.backupSetCount = (Get-BEBackupSet | Measure-Object).Count } catch { $diag.backupSetCount = $null }",
		"try { $diag.sampleJob = (Get-BEJob | Select-Object -First 1 -ExpandProperty Name) } catch { $diag.sampleJob = $null }",
		"$script:resultsAll = @()",
		"$script:attempts = @()",
		fmt.Sprintf("$from = (Get-Date).AddYears(-%d)", b.LookbackYears),
		"$to = (Get-Date).AddDays(1)",
		"function Invoke-BECatalogSearch([string]$p, $server, [bool]$dir) {",
		"  if ($recurse -and $dir) { return $server | Search-BECatalog -Path $p -Recurse -PathIsDirectory -FromBackupTime $from -ToBackupTime $to }",
		"  elseif ($recurse) { return $server | Search-BECatalog -Path $p -Recurse -FromBackupTime $from -ToBackupTime $to }",
		"  elseif ($dir) { return $server | Search-BECatalog -Path $p -PathIsDirectory -FromBackupTime $from -ToBackupTime $to }",
		"  else { return $server | Search-BECatalog -Path $p -FromBackupTime $from -ToBackupTime $to }",
		"}",
		"function Add-Attempt([string]$name, [string]$pattern, [scriptblock]$block) {",
		"  $a = [ordered]@{ name=$name; pattern=$pattern; success=$true; count=0 }",
		"  try {",
		"    $r = & $block",
		"    if ($r) { $arr = @($r); $script:resultsAll += $arr; $a.count = $arr.Count }",
		"  } catch {",
		"    $a.success = $false; $a.error = $_.Exception.Message",
		"  }",
		"  $script:attempts += [pscustomobject]$a",
		"}",
	)

	lines = append(lines, attemptLines(plan)...)

	lines = append(lines,
		"$diag.attempts = $script:attempts",
		// Echo diagnostics to stderr for visibility even when stdout is consumed
		"$diagJson = [pscustomobject]@{ diagnostics = $diag; resultsCount = @($script:resultsAll).Count } | ConvertTo-Json -Depth 6",
		"[Console]::Error.WriteLine($diagJson)",
		"[pscustomobject]@{ diagnostics = $diag; results = @($script:resultsAll) } | ConvertTo-Json -Depth 6",
	)

	return strings.Join(lines, "\n")
}

// moduleImportLines emits the BEMCLI import fallback chain: explicit path
// (manifest, then folder), by name, registry install path, then the common
// Program Files locations. Each attempt is recorded in diagnostics.
func (b *Builder) moduleImportLines() []string {
	return []string{
		"$diag.moduleImport = [ordered]@{ tried=$modulePath; attempts=@(); psModulePath=$env:PSModulePath }",
		"$script:moduleAttempts = @()",
		"function Add-ImportAttempt([string]$name, [scriptblock]$block) {",
		"  $a = [ordered]@{ name=$name; success=$true }",
		"  try { & $block } catch { $a.success=$false; $a.error=$_.Exception.Message }",
		"  $m = Get-Module BEMCLI -ErrorAction SilentlyContinue",
		"  if ($m) { $a.loadedPath=$m.Path; $a.version=$m.Version.ToString() }",
		"  $script:moduleAttempts += [pscustomobject]$a",
		"  return [bool]$m",
		"}",
		"if ($modulePath -and (Test-Path $modulePath)) {",
		"  $manifest = Join-Path $modulePath 'BEMCLI.psd1'",
		"  if (Test-Path $manifest) { Add-ImportAttempt 'explicitManifest' { Import-Module $manifest -Force } | Out-Null }",
		"  if (-not (Get-Module BEMCLI -ErrorAction SilentlyContinue)) { Add-ImportAttempt 'explicitFolder' { Import-Module $modulePath -Force } | Out-Null }",
		"}",
		"if (-not (Get-Module BEMCLI -ErrorAction SilentlyContinue)) { Add-ImportAttempt 'byName' { Import-Module BEMCLI -Force } | Out-Null }",
		"$install = $null",
		"try { $install = (Get-ItemProperty 'HKLM:\\SOFTWARE\\Veritas\\Backup Exec\\Server' -ErrorAction SilentlyContinue).InstallPath } catch {}",
		"if (-not $install) { try { $install = (Get-ItemProperty 'HKLM:\\SOFTWARE\\WOW6432Node\\Veritas\\Backup Exec\\Server' -ErrorAction SilentlyContinue).InstallPath } catch {} }",
		"if ($install) { $cand = Join-Path $install 'Modules\\PowerShell3\\BEMCLI'; if (Test-Path $cand) { Add-ImportAttempt 'registryPath' { Import-Module $cand -Force } | Out-Null } }",
		"$pfBases = @($env:ProgramFiles, ${env:ProgramFiles(x86)}, $env:ProgramW6432) | Where-Object { $_ -and (Test-Path $_) }",
		"foreach ($base in $pfBases) { $cand = Join-Path $base 'Veritas\\Backup Exec\\Modules\\PowerShell3\\BEMCLI'; if (Test-Path $cand) { Add-ImportAttempt ('programfiles:' + $base) { Import-Module $cand -Force } | Out-Null; if (Get-Module BEMCLI) { break } } }",
		"$mod = Get-Module BEMCLI -ErrorAction SilentlyContinue",
		"$diag.moduleImport.success = [bool]$mod",
		"$diag.moduleImport.loadedPath = $mod.Path",
		"$diag.moduleImport.version = if ($mod) { $mod.Version.ToString() } else { $null }",
		"$diag.moduleImport.attempts = $script:moduleAttempts",
	}
}

// attemptLines unrolls the plan into one block per attempt. Agent resolution
// failure records an agent_lookup failure instead of an agent-scoped search;
// the all-agents fan-out runs unconditionally.
func attemptLines(plan []catalog.PlannedAttempt) []string {
	var lines []string
	for _, a := range plan {
		pattern := escape(a.Pattern)
		dir := psBool(a.Directory)

		switch a.Scope {
		case catalog.ScopeAgent:
			lines = append(lines,
				"$server = $null",
				"try { $server = Get-BEAgentServer -Name $agentName } catch {}",
				fmt.Sprintf("if ($server) { Add-Attempt '%s' '%s' { Invoke-BECatalogSearch -p '%s' -server $server -dir %s } }",
					escape(a.Name), pattern, pattern, dir),
				fmt.Sprintf("else { $script:attempts += [pscustomobject]@{ name='agent_lookup'; pattern='%s'; success=$false; error='Agent not found' } }",
					pattern),
			)
		case catalog.ScopeAllAgents:
			lines = append(lines,
				fmt.Sprintf("Add-Attempt '%s' '%s' { Get-BEAgentServer | ForEach-Object { Invoke-BECatalogSearch -p '%s' -server $_ -dir %s } }",
					escape(a.Name), pattern, pattern, dir),
			)
		}
	}
	return lines
}
