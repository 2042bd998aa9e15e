package sqlinline

const QListContributionsReceived = `--sql 8a992350-fb7c-4f26-b0bf-88ba3a8c9b08
select id, amount, date, contributor_name, coalesce(contributor_id, ''),
       recipient_name, coalesce(recipient_id, '')
from contributions
where recipient_id = $1::text
order by date desc, id;
`

const QListContributionsGiven = `--sql f419113b-418a-419c-84fa-fb4657fbcda6
select id, amount, date, contributor_name, coalesce(contributor_id, ''),
       recipient_name, coalesce(recipient_id, '')
from contributions
where contributor_id = $1::text
order by date desc, id;
`
