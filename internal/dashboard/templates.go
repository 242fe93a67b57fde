// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import "html/template"

var pages = template.Must(template.New("dashboard").Parse(`
{{define "layout_head"}}<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>congress-sync</title>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 900px; margin: 0 auto; padding: 20px; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
  th { background-color: #f2f2f2; }
  nav a { margin-right: 15px; }
  pre { background-color: #f8f8f8; padding: 10px; border-radius: 5px; overflow-x: auto; }
  .state-DONE { color: #27ae60; }
  .state-FAILED, .state-REJECTED { color: #c0392b; }
</style>
</head>
<body>
<nav>
  <a href="/">Home</a>
  <a href="/reports">Reports</a>
  <a href="/settings">Settings</a>
</nav>
{{end}}

{{define "layout_foot"}}</body>
</html>
{{end}}

{{define "home"}}{{template "layout_head"}}
<h1>Congressional Data Sync</h1>
<form method="post" action="/run">
  <button type="submit">Run update now</button>
</form>
{{if .Message}}<p><em>{{.Message}}</em></p>{{end}}
<h2>Recent Runs</h2>
{{if .Runs}}
<table>
  <tr><th>Started</th><th>State</th><th>House</th><th>Senate</th><th>New</th><th>Updated</th><th>Removed</th><th>Error</th></tr>
  {{range .Runs}}
  <tr>
    <td>{{.StartedAt.Format "2006-01-02 15:04:05"}}</td>
    <td class="state-{{.State}}">{{.State}}</td>
    <td>{{.HouseCount}}</td>
    <td>{{.SenateCount}}</td>
    <td>{{.NewCount}}</td>
    <td>{{.UpdatedCount}}</td>
    <td>{{.RemovedCount}}</td>
    <td>{{.Error}}</td>
  </tr>
  {{end}}
</table>
{{else}}<p>No runs recorded yet.</p>{{end}}
{{template "layout_foot"}}{{end}}

{{define "reports"}}{{template "layout_head"}}
<h1>Reports</h1>
{{if .Reports}}
<table>
  <tr><th>Generated</th><th>New</th><th>Updated</th><th>Removed</th><th>Errors</th><th>Warnings</th><th></th></tr>
  {{range .Reports}}
  <tr>
    <td><a href="/reports/{{.ID}}">{{.GeneratedAt.Format "2006-01-02 15:04:05"}}</a></td>
    <td>{{.New}}</td>
    <td>{{.Updated}}</td>
    <td>{{.Removed}}</td>
    <td>{{.Errors}}</td>
    <td>{{.Warnings}}</td>
    <td><a href="/reports/{{.ID}}/download">download</a></td>
  </tr>
  {{end}}
</table>
{{else}}<p>No reports yet.</p>{{end}}
{{template "layout_foot"}}{{end}}

{{define "report_detail"}}{{template "layout_head"}}
<h1>{{.ID}}</h1>
<p><a href="/reports/{{.ID}}/download">Download</a></p>
<pre>{{.Content}}</pre>
{{template "layout_foot"}}{{end}}

{{define "settings"}}{{template "layout_head"}}
<h1>Settings</h1>
{{if .Message}}<p><em>{{.Message}}</em></p>{{end}}
<form method="post" action="/settings">
  <p>
    <label>Update interval (e.g. 24h):
      <input type="text" name="interval" value="{{.Interval}}">
    </label>
  </p>
  <p>
    <label>Notification recipients (comma separated):
      <input type="text" name="recipients" value="{{.Recipients}}" size="60">
    </label>
  </p>
  <button type="submit">Save</button>
</form>
{{template "layout_foot"}}{{end}}
`))
