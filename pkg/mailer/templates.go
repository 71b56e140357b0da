package mailer

import (
	"bytes"
	"html/template"
	"time"
)

var priceDropTmpl = template.Must(template.New("priceDrop").Parse(`
<h2>¡Bajó de precio!</h2>
<p><strong>{{.MedicineName}}</strong> en {{.Pharmacy}} ahora cuesta
<strong>{{.NewPrice}}</strong> (antes {{.OldPrice}}).</p>
{{if .MedicineURL}}<p><a href="{{.MedicineURL}}">Ver producto</a></p>{{end}}
<p>Recibes este correo porque creaste una alerta de precio.</p>
`))

type PriceDropData struct {
	MedicineName string
	Pharmacy     string
	NewPrice     string
	OldPrice     string
	MedicineURL  string
}

func RenderPriceDrop(data PriceDropData) (string, error) {
	var buf bytes.Buffer
	if err := priceDropTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var runReportTmpl = template.Must(template.New("runReport").Parse(`
<h2>Reporte de actualización de precios</h2>
<p>Ejecutado: {{.FinishedAt.Format "2006-01-02 15:04:05"}} &mdash; duración total {{.Total}}.</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Paso</th><th>Estado</th><th>Duración</th></tr>
{{range .Steps}}<tr><td>{{.Name}}</td><td>{{.Status}}</td><td>{{.Duration}}</td></tr>
{{end}}</table>
{{if .Errors}}<h3>Errores</h3><ul>{{range .Errors}}<li>{{.}}</li>{{end}}</ul>
{{else}}<p>Sin errores.</p>{{end}}
`))

type RunReportStep struct {
	Name     string
	Status   string
	Duration time.Duration
}

type RunReportData struct {
	FinishedAt time.Time
	Total      time.Duration
	Steps      []RunReportStep
	Errors     []string
}

func RenderRunReport(data RunReportData) (string, error) {
	var buf bytes.Buffer
	if err := runReportTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
