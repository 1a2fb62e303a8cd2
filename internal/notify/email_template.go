package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 560px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #463737 0%, #37393b 100%);
      color: #ffffff;
    }

    .headline {
      font-size: 22px;
      font-weight: 700;
      letter-spacing: 0.03em;
    }

    .badge {
      display: inline-block;
      margin-top: 8px;
      padding: 4px 10px;
      font-size: 11px;
      font-weight: 600;
      border-radius: 4px;
      background: #f97316;
      color: #ffffff;
      text-transform: uppercase;
      letter-spacing: 0.05em;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
      font-size: 14px;
    }

    .label {
      color: #6b7280;
      width: 120px;
      padding: 4px 0;
    }

    .link a {
      color: #2563eb;
      text-decoration: none;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="headline">{{.Headline}}</div>
      {{if .Badge}}<div class="badge">{{.Badge}}</div>{{end}}
    </div>
    <div class="section">
      <table>
        {{range .Rows}}
        <tr><td class="label">{{.Label}}</td><td>{{.Value}}</td></tr>
        {{end}}
      </table>
    </div>
    <div class="section link">
      <a href="{{.Link}}">{{.Link}}</a>
    </div>
  </div>
</body>
</html>
`
