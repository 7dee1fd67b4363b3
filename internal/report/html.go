package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/terra-clan/ia-booster/internal/models"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"upper": func(p models.Priority) string { return strings.ToUpper(string(p)) },
	"tools": limitTools,
}).Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Rapport IA Booster - {{.Company}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; }
        .header { color: #3b82f6; font-size: 24px; font-weight: bold; }
        .score { background: #f3f4f6; padding: 20px; border-radius: 12px; margin: 20px 0; }
        .recommendation { margin: 20px 0; padding: 15px; border-left: 4px solid #3b82f6; }
        .haute { border-left-color: #dc2626; }
        .moyenne { border-left-color: #f59e0b; }
        .faible { border-left-color: #22c55e; }
        .tool { margin: 10px 0; padding: 10px; background: #f9fafb; border-radius: 8px; }
    </style>
</head>
<body>
    <div class="header">IA BOOSTER</div>
    <p>Rapport généré le {{.Date}}</p>

    <h2>Plan d'optimisation IA pour {{.Company}}</h2>
    {{- if .Sector}}
    <p><strong>Secteur:</strong> {{.Sector}}</p>
    {{- end}}

    <div class="score">
        <h3>Résumé de l'analyse</h3>
        <p><strong>Score d'optimisation IA:</strong> {{.Result.Score}}/100</p>
        <p><strong>Temps économisé estimé:</strong> {{.Result.AverageTimeSaved}}</p>
        <p><strong>Domaines identifiés:</strong> {{len .Result.Domains}}</p>
    </div>

    <h3>Recommandations personnalisées</h3>
    {{- range $i, $rec := .Result.Recommendations}}
    <div class="recommendation {{$rec.Priority}}">
        <h4>{{inc $i}}. {{$rec.Domain}} ({{upper $rec.Priority}})</h4>
        <p>{{$rec.Description}}</p>
        <p><strong>Impact:</strong> {{$rec.Impact}}</p>
        <h5>Outils recommandés:</h5>
        {{- range tools $rec.Tools}}
        <div class="tool">
            <strong>{{if .URL}}<a href="{{.URL}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</strong> - {{.Price}}<br>
            <small>{{.Description}}</small>
        </div>
        {{- end}}
    </div>
    {{- end}}

    <hr style="margin: 40px 0;">
    <small style="color: #666;">
        {{.Footer}}<br>
        Pour plus d'informations: {{.Contact}}
    </small>
</body>
</html>
`))

type htmlData struct {
	Company string
	Sector  string
	Date    string
	Result  models.AnalysisResult
	Footer  string
	Contact string
}

// HTML renders the analysis as a standalone French HTML page. Model-provided
// text is escaped.
func HTML(result models.AnalysisResult, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, htmlData{
		Company: opts.Company,
		Sector:  opts.Sector,
		Date:    opts.GeneratedAt.Format(frenchDateShape),
		Result:  result,
		Footer:  footerLine,
		Contact: contactEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render html report: %w", err)
	}
	return buf.Bytes(), nil
}
