package main

// demoScript walks through every role against the default seed dataset.
var demoScript = `help
login student student@example.com student123
whoami
internships
apply 1f3a
apply 1f3a
dashboard
logout
login mentor mentor@example.com mentor123
applications
approve a41c Strong candidate
reject a41c
dashboard
logout
login placement_cell placement@example.com placement123
post
Mobile Developer Intern
AppWorks
Build cross-platform apps with the mobile team.
Dart, Flutter, Git
12000
3 months
Remote
2025-06-30
stats 2b7c
dashboard
metrics
logout
exit
`
