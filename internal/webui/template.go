// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webui

// pageTemplate is the single-page UI: a fetch form, one result box per
// edition with a rich-text copy button, a client-side red-letter
// toggle, and the analysis trace behind a details fold.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Bible Passage Fetcher</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; max-width: 800px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #333; }
        .controls { display: flex; flex-wrap: wrap; gap: 15px; align-items: center; margin-bottom: 25px; background: #eee; padding: 15px; border-radius: 8px; }
        input[type="text"] { padding: 10px; border: 1px solid #ccc; border-radius: 4px; flex: 1; min-width: 180px; }
        button { padding: 10px 25px; cursor: pointer; background-color: #007bff; color: white; border: none; border-radius: 4px; font-weight: bold; }
        .result { background: #f8f9fa; padding: 25px; border-radius: 8px; margin-top: 20px; border-left: 5px solid #007bff; position: relative; }
        h3.version-title { margin-top: 0; margin-bottom: 5px; color: #007bff; border-bottom: 1px solid #ddd; padding-bottom: 5px; }
        .passage-content { white-space: pre-wrap; word-wrap: break-word; font-family: sans-serif; }
        .copy-btn { position: absolute; top: 15px; right: 15px; background: #6c757d; color: white; border: none; font-size: 12px; padding: 6px 12px; border-radius: 4px; cursor: pointer; }
        .hide-red-letters .woj-text { color: inherit !important; }
        .debug-box { margin-top: 30px; background: #333; color: #0f0; padding: 15px; font-family: monospace; font-size: 12px; border-radius: 5px; overflow-x: auto; white-space: pre; }
        label { cursor: pointer; display: flex; align-items: center; gap: 5px; font-weight: 500; }
        #spinner { display: none; margin: 15px 0; font-weight: bold; color: #007bff; }
    </style>
</head>
<body>
    <h2>&#128214; Bible Passage Fetcher</h2>
    <form id="fetchForm" method="POST">
        <div class="controls">
            <input type="text" name="passage" placeholder="e.g. John 8:12" required value="{{.Passage}}">
            <input type="text" name="versions" placeholder="e.g. KOERV NIV" required value="{{.Editions}}">
            <div style="display:flex; flex-direction:column; gap:5px;">
                <label><input type="checkbox" name="include_verses"{{if .VerseNumbers}} checked{{end}}> Verse Numbers</label>
                <label><input type="checkbox" id="redLetterToggle" name="red_letter"{{if .RedLetter}} checked{{end}}> Jesus's words in red</label>
            </div>
            <button type="submit" id="submitBtn">Fetch</button>
        </div>
    </form>
    <div id="spinner">Processing...</div>

    {{if .Results}}
        <div id="results-container" class="{{if not .RedLetter}}hide-red-letters{{end}}">
            {{range $i, $block := .Results}}
                <div class="result">
                    <div id="copy-target-{{$i}}">{{range $j, $p := $block.Passages}}{{if $j}}<br><br>{{end}}<h3 class="version-title">{{$block.Edition}} - {{$p.Ref}}</h3><div class="passage-content">{{$p.HTML}}</div>{{end}}</div>
                    <button class="copy-btn" onclick="copyRichText('copy-target-{{$i}}', this)">Copy All {{$block.Edition}}</button>
                </div>
            {{end}}
        </div>
        <details>
            <summary><strong>Debug Log</strong></summary>
            <div class="debug-box">{{range .TraceLines}}{{.}}
{{end}}</div>
        </details>
    {{end}}
    <script>
        document.getElementById('fetchForm').onsubmit = function() {
            document.getElementById('spinner').style.display = 'block';
            document.getElementById('submitBtn').disabled = true;
            document.getElementById('submitBtn').innerText = 'Fetching...';
        };
        var toggle = document.getElementById('redLetterToggle');
        var container = document.getElementById('results-container');
        if (toggle && container) {
            toggle.onchange = function() {
                container.classList.toggle('hide-red-letters', !this.checked);
            };
        }
        async function copyRichText(elementId, btn) {
            const element = document.getElementById(elementId);
            const isRedOn = document.getElementById('redLetterToggle').checked;
            let htmlData = element.innerHTML.trim();
            if (!isRedOn) {
                const wrapper = document.createElement('div');
                wrapper.innerHTML = htmlData;
                wrapper.querySelectorAll('.woj-text').forEach(el => { el.style.color = 'inherit'; });
                htmlData = wrapper.innerHTML;
            }
            const cleanHTML = '<div style="white-space: pre-wrap; font-family: sans-serif;">' + htmlData + '</div>';
            const cleanText = element.innerText.trim();
            const blobHtml = new Blob([cleanHTML], { type: 'text/html' });
            const blobText = new Blob([cleanText], { type: 'text/plain' });
            try {
                await navigator.clipboard.write([ new ClipboardItem({ 'text/html': blobHtml, 'text/plain': blobText }) ]);
                var old = btn.innerText; btn.innerText = "Copied!"; setTimeout(() => btn.innerText = old, 2000);
            } catch (err) { console.error(err); btn.innerText = "Error"; }
        }
    </script>
</body>
</html>
`
