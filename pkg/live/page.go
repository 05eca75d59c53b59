package live

import (
	"html/template"
	"net/http"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
#status { color: #888; font-size: 12px; margin-bottom: 1rem; }
#error { color: #c33; white-space: pre-wrap; }
</style>
</head>
<body>
<div id="status">connecting</div>
<div id="error"></div>
<div id="chart"></div>
<script>
(function() {
    'use strict';

    var svgNS = 'http://www.w3.org/2000/svg';
    var chart = document.getElementById('chart');
    var status = document.getElementById('status');
    var errorBox = document.getElementById('error');
    var reconnectDelay = 1000;

    function byID(id) {
        return chart.querySelector('[data-mid="' + id + '"]');
    }

    function parse(html) {
        var holder = document.createElementNS(svgNS, 'svg');
        holder.innerHTML = html;
        return holder.firstElementChild;
    }

    function insert(parent, node, index) {
        parent.insertBefore(node, parent.childNodes[index] || null);
    }

    function apply(p) {
        var el = p.id ? byID(p.id) : null;
        switch (p.op) {
            case 'SetAttr':
                if (el) el.setAttribute(p.key, p.value);
                break;
            case 'RemoveAttr':
                if (el) el.removeAttribute(p.key);
                break;
            case 'SetText':
                if (el) el.textContent = p.value;
                break;
            case 'InsertNode':
                var parent = byID(p.parent);
                if (parent) insert(parent, parse(p.html), p.index);
                break;
            case 'RemoveNode':
                if (el) el.remove();
                break;
            case 'MoveNode':
                var target = byID(p.parent);
                if (el && target) {
                    el.remove();
                    insert(target, el, p.index);
                }
                break;
            case 'ReplaceNode':
                if (el) el.replaceWith(parse(p.html));
                break;
        }
    }

    function show(msg) {
        status.textContent = 'frame ' + msg.frame + (msg.name ? ' (' + msg.name + ')' : '');
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'reset':
                    chart.innerHTML = msg.html;
                    errorBox.textContent = '';
                    show(msg);
                    break;
                case 'patch':
                    (msg.patches || []).forEach(apply);
                    errorBox.textContent = '';
                    show(msg);
                    break;
                case 'error':
                    errorBox.textContent = msg.error;
                    break;
            }
        };

        ws.onclose = function() {
            status.textContent = 'disconnected, retrying';
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, 30000);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    connect();
})();
</script>
</body>
</html>
`))

type pageData struct {
	Title string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	title := s.player.Dataset().Title
	s.mu.Unlock()
	if title == "" {
		title = "marks"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{Title: title}); err != nil {
		s.logger.Error("render page", "error", err)
	}
}
